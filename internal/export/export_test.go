package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"recibos/internal/model"
	"recibos/internal/service"
)

func sampleReceipt(number int64, amount string, annulled bool) model.Receipt {
	ref := "REF-" + model.FormatNumber(number)
	r := model.Receipt{
		ReceiptNumber:     number,
		Region:            "MERIDA",
		ClientName:        "José Peña",
		ClientTaxID:       "V12345678",
		PropertyAddress:   "Av. Los Próceres, Casa 4",
		TotalAmount:       decimal.RequireFromString(amount),
		DailyExchangeRate: decimal.RequireFromString("36.5123"),
		TransferReference: &ref,
		TransactionDate:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Concept:           "Pago de regularización",
		Status:            model.StatusPaid,
		CreatedBy:         "operador",
	}
	r.Category1 = true
	r.Category8 = true
	if annulled {
		r.Annul("supervisor", time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC))
	}
	return r
}

func sampleReport(n int) service.Report {
	receipts := make([]model.Receipt, 0, n)
	rows := make([]service.ReportRow, 0, n)
	for i := range n {
		r := sampleReceipt(int64(i+1), "1234.56", i%3 == 0)
		receipts = append(receipts, r)
		rows = append(rows, service.ReportRow{Receipt: r, CategoryLabels: r.CategoryLabels()})
	}
	return service.Report{
		Rows:    rows,
		Summary: service.Summarize(receipts),
		Metadata: service.ReportMetadata{
			Period:     "01/03/2024 al 31/03/2024",
			Status:     "Todos",
			Categories: "Todas",
		},
		GeneratedBy: "auditor",
		GeneratedAt: time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestFormatBolivars(t *testing.T) {
	tests := map[string]string{
		"0":          "0,00",
		"5.5":        "5,50",
		"999.99":     "999,99",
		"1000":       "1.000,00",
		"1234567.89": "1.234.567,89",
		"-150":       "-150,00",
		"-1234.5":    "-1.234,50",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, FormatBolivars(decimal.RequireFromString(in)))
		})
	}
}

func TestExcelWriter_Write(t *testing.T) {
	report := sampleReport(3)

	var buf bytes.Buffer
	require.NoError(t, NewExcelWriter().Write(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DataSheet, FiltersSheet}, f.GetSheetList())

	rows, err := f.GetRows(DataSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 5) // header, 3 receipts, totals
	assert.Equal(t, reportHeaders, rows[0])
	assert.Equal(t, "0001", rows[1][0])
	assert.Equal(t, "15/03/2024", rows[1][1])
	assert.Equal(t, "José Peña", rows[1][3])
	assert.Equal(t, "Anulado", rows[1][14])
	assert.Equal(t, "supervisor", rows[1][15])
	assert.Equal(t, "Pagado", rows[2][14])

	totalLabel, err := f.GetCellValue(DataSheet, "J5")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", totalLabel)
	total, err := f.GetCellValue(DataSheet, "K5", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "3703.68", total)

	filters, err := f.GetRows(FiltersSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Período", "01/03/2024 al 31/03/2024"}, filters[0])
	assert.Equal(t, []string{"Registros", "3"}, filters[4])
	assert.Equal(t, []string{"Total Monto (Bs)", "3.703,68"}, filters[5])
	assert.Equal(t, []string{"Generado por", "auditor"}, filters[6])
}

func TestExcelWriter_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExcelWriter().Write(&buf, sampleReport(0)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(DataSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "TOTAL", rows[1][totalColumn-2])
}

func TestPDFWriter(t *testing.T) {
	writer := NewPDFWriter(Options{
		Institution:   "Sistema de Gestión de Recibos de Pago",
		ReceiverName:  "GERENCIA DE ADMINISTRACIÓN",
		ReceiverTitle: "GERENTE DE ADMINISTRACIÓN Y SERVICIOS",
		HeaderImage:   filepath.Join(t.TempDir(), "missing.png"),
	})

	t.Run("report spans pages", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writer.WriteReport(&buf, sampleReport(80)))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
		assert.Greater(t, bytes.Count(buf.Bytes(), []byte("/Type /Page\n")), 1)
	})

	t.Run("empty report", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writer.WriteReport(&buf, sampleReport(0)))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	})

	t.Run("receipt", func(t *testing.T) {
		for _, annulled := range []bool{false, true} {
			var buf bytes.Buffer
			require.NoError(t, writer.WriteReceipt(&buf, sampleReceipt(7, "250.5", annulled)))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
		}
	})
}

func TestPDFWriter_HeaderImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 10))
	for x := range 40 {
		for y := range 10 {
			img.Set(x, y, color.RGBA{R: 0, G: 51, B: 102, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "encabezado.png")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(file, img))
	require.NoError(t, file.Close())

	var buf bytes.Buffer
	writer := NewPDFWriter(Options{HeaderImage: path})
	require.NoError(t, writer.WriteReceipt(&buf, sampleReceipt(1, "10", false)))
	assert.Contains(t, buf.String(), "/Subtype /Image")
}
