package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"

	"recibos/internal/logger"
	"recibos/internal/model"
	"recibos/internal/service"
)

const (
	pageMargin   = 12.0
	headerHeight = 28.0
	lineHeight   = 6.0
	rowHeight    = 6.0
)

type reportColumn struct {
	title string
	width float64
	align string
	value func(service.ReportRow) string
}

var reportColumns = []reportColumn{
	{"N°", 16, "C", func(r service.ReportRow) string { return r.Receipt.DisplayNumber() }},
	{"Fecha", 20, "C", func(r service.ReportRow) string { return r.Receipt.TransactionDate.Format(displayDate) }},
	{"Nombre", 54, "L", func(r service.ReportRow) string { return r.Receipt.ClientName }},
	{"RIF/Cédula", 25, "L", func(r service.ReportRow) string { return r.Receipt.ClientTaxID }},
	{"Categorías", 64, "L", func(r service.ReportRow) string { return joinLabels(r.CategoryLabels) }},
	{"Referencia", 28, "L", func(r service.ReportRow) string { return reference(r.Receipt) }},
	{"Monto (Bs)", 26, "R", func(r service.ReportRow) string { return FormatBolivars(r.Receipt.TotalAmount) }},
	{"Estatus", 22, "C", func(r service.ReportRow) string { return model.StatusLabel(r.Receipt.Status) }},
}

type PDFWriter struct {
	opts Options
}

func NewPDFWriter(opts Options) *PDFWriter {
	return &PDFWriter{opts: opts}
}

// WriteReport renders the filtered receipt list as a landscape table with a totals footer.
func (w *PDFWriter) WriteReport(out io.Writer, report service.Report) error {
	pdf := fpdf.New("L", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Reporte de Recibos", true)
	pdf.SetAuthor(report.GeneratedBy, true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin+6)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pageMargin)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(90, 90, 90)
		footer := fmt.Sprintf("Generado por %s el %s - Página %d de {nb}",
			report.GeneratedBy, report.GeneratedAt.Format("02/01/2006 15:04"), pdf.PageNo())
		pdf.CellFormat(0, 5, tr(footer), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	w.letterhead(pdf, tr)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr("REPORTE DE RECIBOS DE PAGO"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	meta := report.Metadata
	for _, line := range [][2]string{
		{"Período", meta.Period},
		{"Estatus", meta.Status},
		{"Categorías", meta.Categories},
		{"Búsqueda", meta.Search},
	} {
		if line[1] == "" {
			continue
		}
		pdf.CellFormat(0, 5, tr(line[0]+": "+line[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	tableHeader(pdf, tr)
	_, pageHeight := pdf.GetPageSize()
	pdf.SetFont("Helvetica", "", 8)
	for i, row := range report.Rows {
		if pdf.GetY()+rowHeight > pageHeight-pageMargin-8 {
			pdf.AddPage()
			tableHeader(pdf, tr)
			pdf.SetFont("Helvetica", "", 8)
		}
		fill := i%2 == 1
		pdf.SetFillColor(240, 244, 248)
		if row.Receipt.IsAnnulled {
			pdf.SetTextColor(170, 0, 0)
		} else {
			pdf.SetTextColor(0, 0, 0)
		}
		for _, col := range reportColumns {
			text := fit(pdf, tr(col.value(row)), col.width-2)
			pdf.CellFormat(col.width, rowHeight, text, "1", 0, col.align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 9)
	labelWidth := 0.0
	for _, col := range reportColumns[:len(reportColumns)-2] {
		labelWidth += col.width
	}
	label := fmt.Sprintf("TOTAL (%d recibos)", report.Summary.Count)
	pdf.CellFormat(labelWidth, rowHeight+1, tr(label), "1", 0, "R", false, 0, "")
	amountCol := reportColumns[len(reportColumns)-2]
	pdf.CellFormat(amountCol.width, rowHeight+1, FormatBolivars(report.Summary.TotalAmount), "1", 0, "R", false, 0, "")
	pdf.CellFormat(reportColumns[len(reportColumns)-1].width, rowHeight+1, "", "1", 1, "C", false, 0, "")

	return pdf.Output(out)
}

func tableHeader(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(0, 51, 102)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range reportColumns {
		pdf.CellFormat(col.width, rowHeight+1, tr(col.title), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

// WriteReceipt renders one receipt as the printable payment document.
func (w *PDFWriter) WriteReceipt(out io.Writer, r model.Receipt) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Recibo "+r.DisplayNumber(), true)
	pdf.SetAuthor(r.CreatedBy, true)
	pdf.SetMargins(pageMargin+3, pageMargin, pageMargin+3)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	w.letterhead(pdf, tr)
	width := usableWidth(pdf)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(width/2, 8, "RECIBO DE PAGO", "", 0, "L", false, 0, "")
	if r.IsAnnulled {
		pdf.SetTextColor(200, 0, 0)
	} else {
		pdf.SetTextColor(0, 102, 0)
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(width/2, 8, "ESTADO: "+statusText(r), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, lineHeight, tr("Nº Recibo: "+r.DisplayNumber()), "", 1, "L", false, 0, "")
	if r.IsAnnulled && r.AnnulledBy != nil && r.AnnulledAt != nil {
		pdf.SetFont("Helvetica", "I", 9)
		note := fmt.Sprintf("Anulado por %s el %s", *r.AnnulledBy, r.AnnulledAt.Format("02/01/2006 15:04"))
		pdf.CellFormat(0, lineHeight, tr(note), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
	}
	pdf.Ln(3)

	pdf.CellFormat(0, lineHeight, tr("Fecha: "+r.TransactionDate.Format(displayDate)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight, tr("Recibí de: "+r.ClientName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight, tr("Identificación (RIF/Cédula): "+r.ClientTaxID), "", 1, "L", false, 0, "")
	if r.PropertyAddress != "" {
		pdf.MultiCell(0, lineHeight, tr("Dirección: "+r.PropertyAddress), "", "L", false)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(width*0.6, 8, "MONTO TOTAL RECIBIDO (Bs):", "", 0, "L", false, 0, "")
	pdf.CellFormat(width*0.4, 8, FormatBolivars(r.TotalAmount), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	ref := reference(r)
	if ref == "" {
		ref = "N/A"
	}
	pdf.CellFormat(0, lineHeight, tr("Nº de Transferencia/Referencia: "+ref), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, lineHeight, "CONCEPTO/DETALLE DEL PAGO:", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	concept := r.Concept
	if concept == "" {
		concept = "Sin concepto detallado."
	}
	pdf.MultiCell(0, 5, tr(concept), "", "L", false)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, lineHeight, tr("REGULARIZACIÓN DEL PAGO:"), "B", 1, "L", false, 0, "")
	pdf.Ln(1)
	left, _, _, _ := pdf.GetMargins()
	for i, on := range r.Flags() {
		if !on {
			continue
		}
		category := model.Categories[i]
		y := pdf.GetY()
		pdf.Rect(left+1, y+1, 4, 4, "D")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.Text(left+1.8, y+4.3, "X")
		pdf.SetX(left + 8)
		pdf.CellFormat(0, 5, tr(category.Label), "", 1, "L", false, 0, "")
		pdf.SetX(left + 8)
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(width-8, 4.5, tr(category.Description), "", "L", false)
		pdf.Ln(1)
	}

	w.signatures(pdf, tr, r)
	return pdf.Output(out)
}

func (w *PDFWriter) signatures(pdf *fpdf.Fpdf, tr func(string) string, r model.Receipt) {
	_, pageHeight := pdf.GetPageSize()
	const blockHeight = 40.0
	top := pageHeight - pageMargin - blockHeight
	if pdf.GetY() > top {
		pdf.AddPage()
	}

	left, _, _, _ := pdf.GetMargins()
	width := usableWidth(pdf)
	lineWidth := width/2 - 10
	receiverX := left + width - lineWidth
	lineY := top + 12
	pdf.Line(left, lineY, left+lineWidth, lineY)
	pdf.Line(receiverX, lineY, receiverX+lineWidth, lineY)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(left, lineY+1)
	pdf.CellFormat(lineWidth, 5, "FIRMA DEL CLIENTE", "", 0, "C", false, 0, "")
	pdf.SetXY(receiverX, lineY+1)
	pdf.CellFormat(lineWidth, 5, "FIRMA DEL RECEPTOR", "", 0, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(left, lineY+6)
	pdf.MultiCell(lineWidth, 4.5, tr(r.ClientName), "", "C", false)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(receiverX, lineY+6)
	for _, line := range []string{w.opts.ReceiverName, w.opts.ReceiverTitle} {
		if line == "" {
			continue
		}
		pdf.SetX(receiverX)
		pdf.CellFormat(lineWidth, 4, tr(line), "", 1, "C", false, 0, "")
	}
}

// letterhead draws the configured header image, or a filled band with the institution name.
func (w *PDFWriter) letterhead(pdf *fpdf.Fpdf, tr func(string) string) {
	left, top, _, _ := pdf.GetMargins()
	width := usableWidth(pdf)

	if w.opts.HeaderImage != "" {
		_, err := os.Stat(w.opts.HeaderImage)
		if err == nil {
			pdf.ImageOptions(w.opts.HeaderImage, left, top, width, headerHeight, false,
				fpdf.ImageOptions{ReadDpi: true}, 0, "")
			pdf.SetY(top + headerHeight + 4)
			return
		}
		logger.Log.Warn().Err(err).Str("path", w.opts.HeaderImage).Msg("header image unavailable, drawing placeholder")
	}

	pdf.SetFillColor(0, 51, 102)
	pdf.Rect(left, top, width, headerHeight, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 15)
	pdf.SetXY(left, top+7)
	pdf.CellFormat(width, 8, tr("LOGO DE LA INSTITUCIÓN / MEMBRETE"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(left)
	pdf.CellFormat(width, 6, tr(w.opts.Institution), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(top + headerHeight + 4)
}

func usableWidth(pdf *fpdf.Fpdf) float64 {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	return pageWidth - left - right
}

// fit shortens already translated (single byte) text with an ellipsis until it fits in width.
func fit(pdf *fpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	for len(text) > 0 && pdf.GetStringWidth(text+"...") > width {
		text = text[:len(text)-1]
	}
	return text + "..."
}

func joinLabels(labels []string) string {
	if len(labels) == 0 {
		return "-"
	}
	return strings.Join(labels, "; ")
}
