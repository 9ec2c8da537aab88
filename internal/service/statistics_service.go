package service

import (
	"context"
	"fmt"
	"time"

	"recibos/internal/model"
	"recibos/internal/repository"
)

type StatisticsService interface {
	GetStatistics(ctx context.Context, startDate, endDate time.Time) (model.StatisticsResponse, error)
}

type statisticsService struct {
	statisticsRepo repository.StatisticsRepository
	receiptRepo    repository.ReceiptRepository
}

func NewStatisticsService(statisticsRepo repository.StatisticsRepository, receiptRepo repository.ReceiptRepository) StatisticsService {
	return &statisticsService{statisticsRepo: statisticsRepo, receiptRepo: receiptRepo}
}

// GetStatistics summarizes receipts dated within the inclusive range
func (s *statisticsService) GetStatistics(ctx context.Context, startDate, endDate time.Time) (model.StatisticsResponse, error) {
	if startDate.After(endDate) {
		return model.StatisticsResponse{}, fmt.Errorf("%w: start date is after end date", ErrInvalidCriteria)
	}

	response := model.StatisticsResponse{
		TimeRangeStartDate: startDate,
		TimeRangeEndDate:   endDate,
		ByCategory:         make([]model.CategoryTotal, 0, model.CategoryCount),
	}

	counts, err := s.statisticsRepo.StatusCounts(ctx, startDate, endDate)
	if err != nil {
		return response, err
	}
	for i := range counts {
		counts[i].Label = model.StatusLabel(counts[i].Status)
		response.TotalReceipts += counts[i].Count
	}
	response.ByStatus = counts

	inRange := func(status string, categories ...int) repository.ReceiptCriteria {
		return repository.ReceiptCriteria{From: &startDate, To: &endDate, Status: status, Categories: categories}
	}

	active, err := s.summarize(ctx, inRange(repository.StatusFilterActive))
	if err != nil {
		return response, err
	}
	response.ActiveReceipts = active.Count
	response.ActiveAmount = active.TotalAmount.StringFixed(2)

	annulled, err := s.summarize(ctx, inRange(repository.StatusFilterAnnulled))
	if err != nil {
		return response, err
	}
	response.AnnulledReceipts = annulled.Count
	response.AnnulledAmount = annulled.TotalAmount.StringFixed(2)

	for _, category := range model.Categories {
		summary, err := s.summarize(ctx, inRange(repository.StatusFilterActive, category.Index))
		if err != nil {
			return response, err
		}
		response.ByCategory = append(response.ByCategory, model.CategoryTotal{
			Index:       category.Index,
			Label:       category.Label,
			Count:       summary.Count,
			TotalAmount: summary.TotalAmount.StringFixed(2),
		})
	}

	return response, nil
}

func (s *statisticsService) summarize(ctx context.Context, criteria repository.ReceiptCriteria) (Summary, error) {
	amounts, err := s.receiptRepo.TotalAmounts(ctx, criteria)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to total receipts: %w", err)
	}
	return Summary{Count: len(amounts), TotalAmount: sumAmounts(amounts)}, nil
}
