package model

import (
	"time"
)

// StatisticsResponse aggregates receipt counts and totals for the dashboard
type StatisticsResponse struct {
	TotalReceipts      int64           `json:"total_receipts"`
	ActiveReceipts     int             `json:"active_receipts"`
	ActiveAmount       string          `json:"active_amount"`
	AnnulledReceipts   int             `json:"annulled_receipts"`
	AnnulledAmount     string          `json:"annulled_amount"`
	ByStatus           []StatusCount   `json:"by_status"`
	ByCategory         []CategoryTotal `json:"by_category"`
	TimeRangeStartDate time.Time       `json:"time_range_start_date"`
	TimeRangeEndDate   time.Time       `json:"time_range_end_date"`
}

// StatusCount is the number of receipts in one stored status
type StatusCount struct {
	Status string `json:"status"`
	Label  string `json:"label" gorm:"-"`
	Count  int64  `json:"count"`
}

// CategoryTotal sums the active receipts carrying one category flag
type CategoryTotal struct {
	Index       int    `json:"index"`
	Label       string `json:"label"`
	Count       int    `json:"count"`
	TotalAmount string `json:"total_amount"`
}
