package database

import (
	"fmt"
	"time"

	"recibos/internal/logger"
	"recibos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewConnection initializes a new connection pool using GORM.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := Open(postgres.Open(dsn))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := Migrate(db); err != nil {
		logger.Log.Warn().Err(err).Msg("failed to auto-migrate models")
	}

	return db, nil
}

// Open opens a gorm handle with error translation and a warn-level query log.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the receipt tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Receipt{},
		&model.ReceiptSequence{},
		&model.AuditLog{},
	)
}
