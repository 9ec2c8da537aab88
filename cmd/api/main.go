package main

import (
	_ "recibos/api/swagger" // swagger docs
	"recibos/internal/config"
	"recibos/internal/database"
	"recibos/internal/export"
	"recibos/internal/handler"
	"recibos/internal/logger"
	"recibos/internal/middleware"
	"recibos/internal/repository"
	"recibos/internal/service"
	"recibos/internal/spreadsheet"
	"recibos/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Receipts API
// @version         1.0
// @description     Payment receipt import, numbering, annulment and reporting.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.SetLevel(cfg.LogLevel)
	if cfg.LogJSON {
		logger.SetJSON()
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := database.NewConnection(cfg.DSN())
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("database connection failed")
	}
	logger.Log.Info().Str("host", cfg.DB.Host).Str("database", cfg.DB.Name).Msg("connected to PostgreSQL")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	secret := []byte(cfg.JWTSecret)
	guard := middleware.NewGuard(secret)
	template := spreadsheet.Template{SheetName: cfg.Import.SheetName, HeaderRows: cfg.Import.HeaderRows}

	// Set up dependencies (Repository -> Service -> Handler)
	receiptRepo := repository.NewReceiptRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)

	receiptService := service.NewReceiptService(receiptRepo, sequenceRepo, auditRepo, txManager, wsHub)
	importService := service.NewImportService(spreadsheet.NewReader(template), receiptRepo, sequenceRepo, auditRepo, txManager, wsHub)
	reportService := service.NewReportService(receiptRepo)
	auditService := service.NewAuditService(auditRepo)
	statisticsService := service.NewStatisticsService(repository.NewStatisticsRepository(db), receiptRepo)

	pdfWriter := export.NewPDFWriter(export.Options{
		HeaderImage:   cfg.Report.HeaderImage,
		Institution:   cfg.Report.Institution,
		ReceiverName:  cfg.Report.ReceiverName,
		ReceiverTitle: cfg.Report.ReceiverTitle,
	})

	// Initialize Handlers
	receiptHandler := handler.NewReceiptHandler(receiptService, pdfWriter, guard)
	importHandler := handler.NewImportHandler(importService, template, guard)
	reportHandler := handler.NewReportHandler(reportService, export.NewExcelWriter(), pdfWriter, guard)
	auditHandler := handler.NewAuditHandler(auditService, guard)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService, guard)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK", "ws_clients": wsHub.ClientCount()})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, secret, middleware.RoleAdmin, middleware.RoleOperator)
	})

	// API Routing
	receiptHandler.RegisterRoutes(router.Group(""))
	importHandler.RegisterRoutes(router.Group(""))
	reportHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))
	statisticsHandler.RegisterRoutes(router.Group(""))

	logger.Log.Info().Str("port", cfg.Port).Msg("server listening")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal().Err(err).Msg("server failed")
	}
}
