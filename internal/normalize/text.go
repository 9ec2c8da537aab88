package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	titleCaser = cases.Title(language.Spanish)
	upperCaser = cases.Upper(language.Spanish)
)

// Text trims and collapses inner whitespace, keeping case.
func Text(raw any) string {
	if IsBlank(raw) {
		return ""
	}
	return collapseSpaces(toString(raw))
}

// Title is the casing policy for names and addresses.
func Title(raw any) string {
	s := Text(raw)
	if s == "" {
		return ""
	}
	return titleCaser.String(strings.ToLower(s))
}

// Upper is the casing policy for identifiers and entity names.
func Upper(raw any) string {
	return upperCaser.String(Text(raw))
}

// TaxID upper-cases a tax identifier after removing dots, dashes and spaces.
// Numeric cells such as 12345678.0 lose their fractional zero.
func TaxID(raw any) string {
	switch v := raw.(type) {
	case float64:
		if v == float64(int64(v)) {
			raw = int64(v)
		}
	}
	s := Upper(raw)
	if strings.HasSuffix(s, ".0") && isDigits(strings.TrimSuffix(s, ".0")) {
		s = strings.TrimSuffix(s, ".0")
	}
	return strings.Map(func(r rune) rune {
		if r == '.' || r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// OptionalUpper returns nil for blank values, otherwise the upper-cased text.
func OptionalUpper(raw any) *string {
	s := Upper(raw)
	if s == "" {
		return nil
	}
	return &s
}

// UpperNoDiacritics is the casing policy for regions: "Mérida" becomes "MERIDA".
func UpperNoDiacritics(raw any) string {
	s := Text(raw)
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return upperCaser.String(stripped)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
