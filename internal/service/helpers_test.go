package service

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"recibos/internal/database/databasetest"
	"recibos/internal/model"
	"recibos/internal/repository"
	"recibos/internal/spreadsheet"
)

var testTemplate = spreadsheet.Template{SheetName: "Recibos", HeaderRows: 1}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(eventType string, _ any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
}

func (p *recordingPublisher) Events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

type fixture struct {
	db       *gorm.DB
	receipts repository.ReceiptRepository
	sequence repository.SequenceRepository
	audits   repository.AuditRepository
	tx       repository.TransactionManager
	events   *recordingPublisher
	imports  ImportService
	service  ReceiptService
	reports  ReportService
	ctx      context.Context
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db := databasetest.New(t)
	f := &fixture{
		db:       db,
		receipts: repository.NewReceiptRepository(db),
		sequence: repository.NewSequenceRepository(db),
		audits:   repository.NewAuditRepository(db),
		tx:       repository.NewTransactionManager(db),
		events:   &recordingPublisher{},
		ctx:      context.Background(),
	}
	f.imports = NewImportService(spreadsheet.NewReader(testTemplate), f.receipts, f.sequence, f.audits, f.tx, f.events)
	f.service = NewReceiptService(f.receipts, f.sequence, f.audits, f.tx, f.events)
	f.reports = NewReportService(f.receipts)
	return f
}

func (f *fixture) count(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.Receipt{}).Count(&n).Error)
	return n
}

func (f *fixture) auditActions(t *testing.T) []string {
	t.Helper()
	var actions []string
	require.NoError(t, f.db.Model(&model.AuditLog{}).Order("created_at asc").Pluck("action", &actions).Error)
	return actions
}

// sheetRow builds a template row from the columns that matter to a test.
type sheetRow map[spreadsheet.Column]any

func validRow(name, taxID, date string) sheetRow {
	return sheetRow{
		spreadsheet.ColRegion:         "Mérida",
		spreadsheet.ColName:           name,
		spreadsheet.ColTaxID:          taxID,
		spreadsheet.ColTotalAmount:    "100,00",
		spreadsheet.ColDate:           date,
		spreadsheet.ColConcept:        "Pago",
		spreadsheet.CategoryColumn(1): "Sí",
	}
}

func workbook(t *testing.T, rows ...sheetRow) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Recibos"
	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	header := make([]any, len(spreadsheet.Headers))
	for i, h := range spreadsheet.Headers {
		header[i] = h
	}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(int(col)+1, i+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

// advanceSequence makes the next allocated number equal to next.
func (f *fixture) advanceSequence(t *testing.T, next int64) {
	t.Helper()
	if next <= 1 {
		return
	}
	err := f.tx.RunInTx(f.ctx, func(txCtx context.Context) error {
		_, err := f.sequence.AllocateNext(txCtx, int(next-1))
		return err
	})
	require.NoError(t, err)
}
