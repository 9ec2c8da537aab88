package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"recibos/internal/database/databasetest"
	"recibos/internal/model"
)

func setupRepos(t *testing.T) (*gorm.DB, TransactionManager, ReceiptRepository, SequenceRepository, context.Context) {
	t.Helper()

	db := databasetest.New(t)
	return db,
		NewTransactionManager(db),
		NewReceiptRepository(db),
		NewSequenceRepository(db),
		context.Background()
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func newReceipt(number int64, name string, when time.Time) *model.Receipt {
	r := &model.Receipt{
		ReceiptNumber:   number,
		ClientName:      name,
		ClientTaxID:     "V" + model.FormatNumber(number),
		Region:          "MERIDA",
		TotalAmount:     decimal.RequireFromString("100.00"),
		TransactionDate: when,
		CreatedBy:       "tester",
	}
	r.SyncStatus()
	return r
}

func insertReceipts(t *testing.T, repo ReceiptRepository, receipts ...*model.Receipt) {
	t.Helper()
	require.NoError(t, repo.CreateBatch(context.Background(), receipts))
}
