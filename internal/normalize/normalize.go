// Package normalize converts raw spreadsheet cell values into canonical typed values.
//
// ToBoolean and ToDecimal are total: any input yields a value. ToDate fails on blank
// or unparsable input because a transaction date must never be defaulted.
package normalize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"recibos/internal/logger"
)

var (
	// ErrInvalidDate is returned by ToDate for blank or unparsable values.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidAmount is returned by ParseDecimal for text that is not a number.
	ErrInvalidAmount = errors.New("invalid amount")
)

var trueTokens = map[string]bool{
	"si": true, "sí": true, "true": true, "1": true, "x": true, "y": true,
}

var emptyTokens = map[string]bool{
	"": true, "-": true, "n/a": true, "na": true, "nan": true, "none": true, "null": true,
}

// ToBoolean reports whether raw is a true-like token.
func ToBoolean(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case int:
		return v == 1
	case int64:
		return v == 1
	case float64:
		return v == 1
	case float32:
		return v == 1
	}
	return trueTokens[strings.ToLower(strings.TrimSpace(toString(raw)))]
}

// ToDecimal parses an amount written with currency symbols and locale separators.
// Unparsable input yields zero and a warning.
func ToDecimal(raw any) decimal.Decimal {
	d, err := ParseDecimal(raw)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("unparsable amount, defaulting to zero")
		return decimal.Zero
	}
	return d
}

// ParseDecimal is the strict form of ToDecimal: blank input is zero, anything
// that is not a number once a currency token is removed is ErrInvalidAmount.
func ParseDecimal(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return v, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, nil
		}
		return decimal.NewFromFloat(v), nil
	case float32:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, nil
		}
		return decimal.NewFromFloat32(v), nil
	}

	s := strings.TrimSpace(toString(raw))
	if emptyTokens[strings.ToLower(s)] {
		return decimal.Zero, nil
	}

	// Raw numeric cells, exponents included.
	if d, err := decimal.NewFromString(s); err == nil {
		return d, nil
	}

	cleaned, ok := cleanAmount(s)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// Longest first so "Bs." wins over "Bs".
var currencyTokens = []string{"us$", "usd", "ves", "bs.", "bs", "$", "€"}

// cleanAmount strips one leading or trailing currency token and the sign, then
// accepts only digits and separators. When both separators occur the last one is
// the decimal point; a lone separator kind is decimal only when it occurs once.
func cleanAmount(s string) (string, bool) {
	s = trimCurrency(s)

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = strings.TrimSpace(s[1:])
	}
	s = trimCurrency(s)

	// Whitespace is allowed as a grouping separator.
	body := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if body == "" || !isDigit(body[0]) || !isDigit(body[len(body)-1]) {
		return "", false
	}
	for i := 0; i < len(body); i++ {
		if c := body[i]; !isDigit(c) && c != ',' && c != '.' {
			return "", false
		}
	}

	lastComma := strings.LastIndex(body, ",")
	lastDot := strings.LastIndex(body, ".")

	decimalAt := -1
	switch {
	case lastComma >= 0 && lastDot >= 0:
		decimalAt = max(lastComma, lastDot)
	case lastComma >= 0 && strings.Count(body, ",") == 1:
		decimalAt = lastComma
	case lastDot >= 0 && strings.Count(body, ".") == 1:
		decimalAt = lastDot
	}

	var out strings.Builder
	if negative {
		out.WriteByte('-')
	}
	for i := 0; i < len(body); i++ {
		switch c := body[i]; {
		case i == decimalAt:
			out.WriteByte('.')
		case c == ',' || c == '.':
		default:
			out.WriteByte(c)
		}
	}
	return out.String(), true
}

func trimCurrency(s string) string {
	for _, token := range currencyTokens {
		n := len(token)
		if len(s) < n {
			continue
		}
		switch {
		case strings.EqualFold(s[:n], token):
			return strings.TrimSpace(s[n:])
		case strings.EqualFold(s[len(s)-n:], token):
			return strings.TrimSpace(s[:len(s)-n])
		}
	}
	return s
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

var isoLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
}

var dayFirstLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"02/01/06",
	"2/1/06",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
}

// ToDate accepts native times, Excel serial dates, ISO and day-first strings.
// The result is midnight UTC of the calendar date.
func ToDate(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("%w: blank value", ErrInvalidDate)
	case time.Time:
		if v.IsZero() {
			return time.Time{}, fmt.Errorf("%w: zero time", ErrInvalidDate)
		}
		return dateOnly(v), nil
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, fmt.Errorf("%w: blank value", ErrInvalidDate)
		}
		return dateOnly(*v), nil
	case int:
		return fromSerial(float64(v))
	case int64:
		return fromSerial(float64(v))
	case float64:
		return fromSerial(v)
	}

	s := strings.TrimSpace(toString(raw))
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: blank value", ErrInvalidDate)
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return fromSerial(serial)
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOnly(t), nil
		}
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOnly(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// Serial 1 is 1900-01-01; anything beyond 9999-12-31 is rejected.
func fromSerial(serial float64) (time.Time, error) {
	if math.IsNaN(serial) || serial < 1 || serial > 2958465 {
		return time.Time{}, fmt.Errorf("%w: serial %v out of range", ErrInvalidDate, serial)
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return dateOnly(t), nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	case float64:
		if math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprint(raw)
}

// IsBlank reports whether a cell carries no content.
func IsBlank(raw any) bool {
	s := strings.TrimSpace(toString(raw))
	return s == "" || strings.EqualFold(s, "nan")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
