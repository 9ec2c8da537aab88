package database_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"recibos/internal/database"
	"recibos/internal/database/databasetest"
	"recibos/internal/model"
)

func TestMigrate_CreatesTables(t *testing.T) {
	db := databasetest.New(t)

	for _, m := range []any{&model.Receipt{}, &model.ReceiptSequence{}, &model.AuditLog{}} {
		require.True(t, db.Migrator().HasTable(m))
	}
	require.True(t, db.Migrator().HasIndex(&model.Receipt{}, "idx_receipts_receipt_number"))
}

func TestMigrate_Idempotent(t *testing.T) {
	db := databasetest.New(t)
	require.NoError(t, database.Migrate(db))
}
