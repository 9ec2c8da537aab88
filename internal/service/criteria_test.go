package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recibos/internal/model"
	"recibos/internal/repository"
)

func TestParseCriteria(t *testing.T) {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		params  CriteriaParams
		want    repository.ReceiptCriteria
		wantErr bool
	}{
		{name: "empty", params: CriteriaParams{}, want: repository.ReceiptCriteria{}},
		{
			name:   "search field is case insensitive",
			params: CriteriaParams{Search: "  perez ", SearchField: "Name"},
			want:   repository.ReceiptCriteria{Search: "perez", SearchField: repository.SearchFieldName},
		},
		{name: "unknown field", params: CriteriaParams{SearchField: "email"}, wantErr: true},
		{
			name:   "iso and day-first bounds",
			params: CriteriaParams{From: "2024-01-01", To: "31/03/2024"},
			want:   repository.ReceiptCriteria{From: &jan, To: &mar},
		},
		{name: "bad bound", params: CriteriaParams{From: "enero"}, wantErr: true},
		{name: "inverted range", params: CriteriaParams{From: "2024-03-31", To: "2024-01-01"}, wantErr: true},
		{
			name:   "spanish status alias",
			params: CriteriaParams{Status: "Anulados"},
			want:   repository.ReceiptCriteria{Status: repository.StatusFilterAnnulled},
		},
		{
			name:   "stored status",
			params: CriteriaParams{Status: "under review"},
			want:   repository.ReceiptCriteria{Status: model.StatusUnderReview},
		},
		{name: "unknown status", params: CriteriaParams{Status: "borrado"}, wantErr: true},
		{
			name:   "categories deduplicated",
			params: CriteriaParams{Categories: "3, 1,3,,"},
			want:   repository.ReceiptCriteria{Categories: []int{3, 1}},
		},
		{name: "category out of range", params: CriteriaParams{Categories: "11"}, wantErr: true},
		{name: "category not a number", params: CriteriaParams{Categories: "uno"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCriteria(tt.params)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCriteria)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummarize(t *testing.T) {
	receipts := make([]model.Receipt, 0, 10)
	for range 10 {
		receipts = append(receipts, model.Receipt{TotalAmount: decimal.RequireFromString("0.10")})
	}

	summary := Summarize(receipts)
	assert.Equal(t, 10, summary.Count)
	assert.True(t, summary.TotalAmount.Equal(decimal.NewFromInt(1)), summary.TotalAmount.String())
	assert.Equal(t, SummaryResponse{Count: 10, TotalAmount: "1.00"}, summary.Response())

	empty := Summarize(nil)
	assert.Equal(t, "0.00", empty.Response().TotalAmount)
}
