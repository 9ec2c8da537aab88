package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recibos/internal/model"
	"recibos/internal/repository"
)

// ReportMetadata describes the filter behind a report as display strings.
type ReportMetadata struct {
	Period     string
	Status     string
	Categories string
	Search     string
}

// ReportRow is one receipt with its derived category labels.
type ReportRow struct {
	Receipt        model.Receipt
	CategoryLabels []string
}

// Report is the finalized row set handed to the export writers.
type Report struct {
	Rows        []ReportRow
	Summary     Summary
	Metadata    ReportMetadata
	GeneratedBy string
	GeneratedAt time.Time
}

type ReportService interface {
	BuildReport(ctx context.Context, criteria repository.ReceiptCriteria, actor string) (Report, error)
}

type reportService struct {
	receiptRepo repository.ReceiptRepository
	now         func() time.Time
}

func NewReportService(receiptRepo repository.ReceiptRepository) ReportService {
	return &reportService{receiptRepo: receiptRepo, now: time.Now}
}

func (s *reportService) BuildReport(ctx context.Context, criteria repository.ReceiptCriteria, actor string) (Report, error) {
	receipts, err := s.receiptRepo.Query(ctx, criteria)
	if err != nil {
		return Report{}, fmt.Errorf("failed to fetch receipts: %w", err)
	}

	rows := make([]ReportRow, 0, len(receipts))
	for _, r := range receipts {
		rows = append(rows, ReportRow{Receipt: r, CategoryLabels: r.CategoryLabels()})
	}

	return Report{
		Rows:        rows,
		Summary:     Summarize(receipts),
		Metadata:    describeCriteria(criteria),
		GeneratedBy: actor,
		GeneratedAt: s.now(),
	}, nil
}

const displayDate = "02/01/2006"

func describeCriteria(c repository.ReceiptCriteria) ReportMetadata {
	meta := ReportMetadata{
		Period:     "Todos los registros",
		Status:     "Todos",
		Categories: "Todas",
		Search:     c.Search,
	}

	switch {
	case c.From != nil && c.To != nil:
		meta.Period = c.From.Format(displayDate) + " al " + c.To.Format(displayDate)
	case c.From != nil:
		meta.Period = "Desde " + c.From.Format(displayDate)
	case c.To != nil:
		meta.Period = "Hasta " + c.To.Format(displayDate)
	}

	switch c.Status {
	case "", repository.StatusFilterAll:
	case repository.StatusFilterActive:
		meta.Status = "Activos"
	case repository.StatusFilterAnnulled:
		meta.Status = "Anulados"
	default:
		meta.Status = model.StatusLabel(c.Status)
	}

	labels := make([]string, 0, len(c.Categories))
	for _, index := range c.Categories {
		if category, ok := model.CategoryByIndex(index); ok {
			labels = append(labels, category.Label)
		}
	}
	if len(labels) > 0 {
		meta.Categories = strings.Join(labels, ", ")
	}

	return meta
}
