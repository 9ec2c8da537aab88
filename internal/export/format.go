// Package export renders receipt reports and individual receipts as Excel and PDF documents.
package export

import (
	"strings"

	"github.com/shopspring/decimal"

	"recibos/internal/model"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"

	displayDate = "02/01/2006"
)

// Options are the institution details printed on exported documents.
type Options struct {
	HeaderImage   string // optional path to a PNG or JPEG letterhead
	Institution   string
	ReceiverName  string
	ReceiverTitle string
}

// FormatBolivars renders an amount with dot thousands and comma decimals: 1.234.567,89.
func FormatBolivars(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}

func statusText(r model.Receipt) string {
	if r.IsAnnulled {
		return "ANULADO"
	}
	return "ACTIVO"
}

func yesNo(v bool) string {
	if v {
		return "Sí"
	}
	return "No"
}

func reference(r model.Receipt) string {
	if r.TransferReference == nil {
		return ""
	}
	return *r.TransferReference
}
