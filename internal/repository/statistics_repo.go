package repository

import (
	"context"
	"fmt"
	"time"

	"recibos/internal/model"

	"gorm.io/gorm"
)

type StatisticsRepository interface {
	StatusCounts(ctx context.Context, from, to time.Time) ([]model.StatusCount, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

// StatusCounts groups receipts dated within [from, to] by status.
func (r *statisticsRepository) StatusCounts(ctx context.Context, from, to time.Time) ([]model.StatusCount, error) {
	var counts []model.StatusCount
	if err := GetDB(ctx, r.db).Model(&model.Receipt{}).
		Select("status, COUNT(*) AS count").
		Where("transaction_date >= ? AND transaction_date < ?", from, to.AddDate(0, 0, 1)).
		Group("status").
		Order("status").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count receipts by status: %w", err)
	}
	return counts, nil
}
