// Package spreadsheet reads receipt uploads laid out in the fixed import template.
package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrInvalidFile  = errors.New("file is not a readable xlsx workbook")
	ErrMissingSheet = errors.New("workbook does not contain the import sheet")
)

// ColumnCountError reports a row whose width differs from the canonical layout.
type ColumnCountError struct {
	Row  int
	Got  int
	Want int
}

func (e *ColumnCountError) Error() string {
	return fmt.Sprintf("row %d has %d columns, expected %d", e.Row, e.Got, e.Want)
}

// Template pins the sheet name and the number of header rows to skip.
// The last header row carries the column titles, so at least one is required.
type Template struct {
	SheetName  string
	HeaderRows int
}

// Row is one data row. Number is the 1-based spreadsheet row.
type Row struct {
	Number int
	Cells  [ColumnCount]string
}

// Cell returns the raw value at c.
func (r Row) Cell(c Column) string {
	return r.Cells[c]
}

// IsEmpty reports whether every cell is blank.
func (r Row) IsEmpty() bool {
	for _, c := range r.Cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

type Reader struct {
	template Template
}

func NewReader(t Template) *Reader {
	t.HeaderRows = max(t.HeaderRows, 1)
	return &Reader{template: t}
}

func (r *Reader) Template() Template {
	return r.template
}

// Read returns the data rows of the template sheet.
//
// Cells are read raw: numbers keep full precision and dates arrive as serial numbers.
// The last header row and every data row must fit the canonical layout; trailing
// blank cells are not counted.
func (r *Reader) Read(content []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	defer f.Close()

	if !slices.Contains(f.GetSheetList(), r.template.SheetName) {
		return nil, fmt.Errorf("%w: %q", ErrMissingSheet, r.template.SheetName)
	}

	raw, err := f.GetRows(r.template.SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	var header []string
	if len(raw) >= r.template.HeaderRows {
		header = raw[r.template.HeaderRows-1]
	}
	if got := width(header); got != ColumnCount {
		return nil, &ColumnCountError{Row: r.template.HeaderRows, Got: got, Want: ColumnCount}
	}

	rows := make([]Row, 0, max(len(raw)-r.template.HeaderRows, 0))
	for i := r.template.HeaderRows; i < len(raw); i++ {
		number := i + 1
		if got := width(raw[i]); got > ColumnCount {
			return nil, &ColumnCountError{Row: number, Got: got, Want: ColumnCount}
		}
		row := Row{Number: number}
		copy(row.Cells[:], raw[i])
		for j := range row.Cells {
			row.Cells[j] = strings.TrimSpace(row.Cells[j])
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// width is the row length ignoring trailing blank cells.
func width(cells []string) int {
	n := len(cells)
	for n > 0 && strings.TrimSpace(cells[n-1]) == "" {
		n--
	}
	return n
}

// WriteTemplate writes an empty workbook with the canonical header row.
func WriteTemplate(w io.Writer, t Template) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", t.SheetName); err != nil {
		return err
	}
	headerRow := max(t.HeaderRows, 1)
	for i, h := range Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(t.SheetName, cell, h); err != nil {
			return err
		}
	}
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(ColumnCount, headerRow)
		first, _ := excelize.CoordinatesToCellName(1, headerRow)
		_ = f.SetCellStyle(t.SheetName, first, last, style)
	}
	_ = f.SetColWidth(t.SheetName, "A", "V", 16)

	return f.Write(w)
}
