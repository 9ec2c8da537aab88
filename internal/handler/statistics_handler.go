package handler

import (
	"net/http"
	"time"

	"recibos/internal/middleware"
	"recibos/internal/normalize"
	"recibos/internal/service"
	"recibos/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
	guard             middleware.Guard
	now               func() time.Time
}

func NewStatisticsHandler(statisticsService service.StatisticsService, guard middleware.Guard) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService, guard: guard, now: time.Now}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	statsGroup := router.Group("/api/statistics")
	{
		statsGroup.GET("", h.guard(middleware.RoleAdmin, middleware.RoleOperator), h.GetStatistics)
	}
}

// @Summary      Get Dashboard Statistics
// @Description  Receipt counts per status, active and annulled totals, and totals per category
// @Tags         Statistics
// @Produce      json
// @Param        start_date query string false "Start date (default: first day of the current month)"
// @Param        end_date   query string false "End date, inclusive (default: today)"
// @Success      200 {object} response.Response{data=model.StatisticsResponse}
// @Failure      400 {object} response.Response "Invalid date"
// @Failure      401 {object} response.Response "Unauthorized"
// @Security     BearerAuth
// @Router       /api/statistics [get]
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	// Default to current month if no dates are provided
	now := h.now().UTC()
	startDate := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var err error
	if raw := c.Query("start_date"); raw != "" {
		if startDate, err = normalize.ToDate(raw); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid start_date: "+err.Error()))
			return
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if endDate, err = normalize.ToDate(raw); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid end_date: "+err.Error()))
			return
		}
	}

	stats, err := h.statisticsService.GetStatistics(c.Request.Context(), startDate, endDate)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
