package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"recibos/internal/logger"
	"recibos/internal/model"
	"recibos/internal/service"
)

const (
	DataSheet    = "Recibos"
	FiltersSheet = "Filtros"
)

var reportHeaders = []string{
	"N° Recibo", "Fecha", "Estado", "Nombre", "RIF/Cédula", "Dirección", "Ente Liquidado",
	"Categorías", "Gastos Adm", "Tasa Día", "Total Monto (Bs)", "N° Transferencia",
	"Conciliado", "Concepto", "Estatus", "Anulado por",
}

// column widths in characters, aligned with reportHeaders
var reportWidths = []float64{11, 12, 14, 30, 14, 36, 22, 40, 12, 12, 16, 18, 11, 40, 14, 16}

// totalColumn is the 1-based column of "Total Monto (Bs)".
const totalColumn = 11

type ExcelWriter struct{}

func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{}
}

// Write renders the report as a workbook with a data sheet and a filter summary sheet.
func (w *ExcelWriter) Write(out io.Writer, report service.Report) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Log.Warn().Err(err).Msg("failed to close workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(FiltersSheet); err != nil {
		return err
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		return fmt.Errorf("xlsx styles: %w", err)
	}
	if err := writeDataSheet(f, styles, report); err != nil {
		return fmt.Errorf("xlsx data sheet: %w", err)
	}
	if err := writeFiltersSheet(f, styles, report); err != nil {
		return fmt.Errorf("xlsx filters sheet: %w", err)
	}

	index, _ := f.GetSheetIndex(DataSheet)
	f.SetActiveSheet(index)

	if err := f.Write(out); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

type sheetStyles struct {
	header, amount, rate, total, label int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"003366"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	}); err != nil {
		return s, err
	}
	if s.amount, err = f.NewStyle(&excelize.Style{NumFmt: 4}); err != nil { // #,##0.00
		return s, err
	}
	fourPlaces := "#,##0.0000"
	if s.rate, err = f.NewStyle(&excelize.Style{CustomNumFmt: &fourPlaces}); err != nil {
		return s, err
	}
	if s.total, err = f.NewStyle(&excelize.Style{
		NumFmt: 4,
		Font:   &excelize.Font{Bold: true},
		Border: []excelize.Border{{Type: "top", Color: "000000", Style: 1}},
	}); err != nil {
		return s, err
	}
	if s.label, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, err
	}
	return s, nil
}

func writeDataSheet(f *excelize.File, styles sheetStyles, report service.Report) error {
	header := make([]any, len(reportHeaders))
	for i, h := range reportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(DataSheet, "A1", &header); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(reportHeaders), 1)
	if err := f.SetCellStyle(DataSheet, "A1", last, styles.header); err != nil {
		return err
	}

	for i, row := range report.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := dataRow(row)
		if err := f.SetSheetRow(DataSheet, cell, &values); err != nil {
			return err
		}
	}

	lastRow := len(report.Rows) + 1
	if lastRow > 1 {
		for _, c := range []struct {
			col   string
			style int
		}{{"I", styles.amount}, {"J", styles.rate}, {"K", styles.amount}} {
			if err := f.SetCellStyle(DataSheet, c.col+"2", fmt.Sprintf("%s%d", c.col, lastRow), c.style); err != nil {
				return err
			}
		}
	}

	totalRow := lastRow + 1
	labelCell, _ := excelize.CoordinatesToCellName(totalColumn-1, totalRow)
	totalCell, _ := excelize.CoordinatesToCellName(totalColumn, totalRow)
	if err := f.SetCellValue(DataSheet, labelCell, "TOTAL"); err != nil {
		return err
	}
	if err := f.SetCellValue(DataSheet, totalCell, report.Summary.TotalAmount.InexactFloat64()); err != nil {
		return err
	}
	if err := f.SetCellStyle(DataSheet, labelCell, totalCell, styles.total); err != nil {
		return err
	}

	for i, width := range reportWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(DataSheet, col, col, width); err != nil {
			return err
		}
	}
	return f.SetPanes(DataSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func dataRow(row service.ReportRow) []any {
	r := row.Receipt
	annulledBy := ""
	if r.AnnulledBy != nil {
		annulledBy = *r.AnnulledBy
	}
	return []any{
		r.DisplayNumber(),
		r.TransactionDate.Format(displayDate),
		r.Region,
		r.ClientName,
		r.ClientTaxID,
		r.PropertyAddress,
		r.LiquidatingEntity,
		strings.Join(row.CategoryLabels, "; "),
		r.AdministrativeFee.InexactFloat64(),
		r.DailyExchangeRate.InexactFloat64(),
		r.TotalAmount.InexactFloat64(),
		reference(r),
		yesNo(r.Reconciled),
		r.Concept,
		model.StatusLabel(r.Status),
		annulledBy,
	}
}

func writeFiltersSheet(f *excelize.File, styles sheetStyles, report service.Report) error {
	rows := [][2]string{
		{"Período", report.Metadata.Period},
		{"Estatus", report.Metadata.Status},
		{"Categorías", report.Metadata.Categories},
		{"Búsqueda", report.Metadata.Search},
		{"Registros", fmt.Sprint(report.Summary.Count)},
		{"Total Monto (Bs)", FormatBolivars(report.Summary.TotalAmount)},
		{"Generado por", report.GeneratedBy},
		{"Generado el", report.GeneratedAt.Format("02/01/2006 15:04")},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		values := []any{row[0], row[1]}
		if err := f.SetSheetRow(FiltersSheet, cell, &values); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(FiltersSheet, "A1", fmt.Sprintf("A%d", len(rows)), styles.label); err != nil {
		return err
	}
	if err := f.SetColWidth(FiltersSheet, "A", "A", 20); err != nil {
		return err
	}
	return f.SetColWidth(FiltersSheet, "B", "B", 60)
}
