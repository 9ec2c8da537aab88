package normalize

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestToBoolean(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{"Sí", true},
		{"si", true},
		{" X ", true},
		{"true", true},
		{"1", true},
		{"y", true},
		{1.0, true},
		{int64(1), true},
		{true, true},
		{"no", false},
		{"0", false},
		{"", false},
		{"nan", false},
		{nil, false},
		{0.0, false},
		{2, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, ToBoolean(tt.in))
		})
	}
}

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"locale thousands and comma decimal", "1.234,56", "1234.56"},
		{"us thousands and dot decimal", "1,234.56", "1234.56"},
		{"currency prefix", "Bs. 1.234,56", "1234.56"},
		{"currency suffix", "12.50 Bs.", "12.5"},
		{"dollar sign", "$ 99.99", "99.99"},
		{"single comma is decimal", "1,234", "1.234"},
		{"repeated dots are thousands", "1.234.567", "1234567"},
		{"repeated commas are thousands", "1,234,567", "1234567"},
		{"negative sign", "-45,10", "-45.1"},
		{"accounting negative", "(150.00)", "-150"},
		{"plain integer", "250", "250"},
		{"float cell", 1234.56, "1234.56"},
		{"int cell", 42, "42"},
		{"decimal passthrough", decimal.RequireFromString("7.25"), "7.25"},
		{"exponent", "1.5E+3", "1500"},
		{"raw cell exponent", "2.5e-1", "0.25"},
		{"space grouping", "1 234,56", "1234.56"},
		{"usd suffix", "350,00 USD", "350"},
		{"letters only", "abc", "0"},
		{"letters inside digits", "12abc34", "0"},
		{"not available prefix", "N/D 5", "0"},
		{"free text with numbers", "Ref 2024 pago 300", "0"},
		{"currency in the middle", "12 Bs 50", "0"},
		{"blank", "", "0"},
		{"dash", "-", "0"},
		{"nan token", "NaN", "0"},
		{"nil", nil, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDecimal(tt.in)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "ToDecimal(%v) = %s, want %s", tt.in, got, tt.want)
		})
	}
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal("Bs. 1.250,75")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1250.75")))

	d, err = ParseDecimal("  ")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	for _, in := range []string{"abc", "12abc34", "N/D 5", "1..", "Bs.", "5-5"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDecimal(in)
			require.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}

func TestToDecimal_LocaleRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cents := rapid.Int64Range(0, 99_999_999_999).Draw(t, "cents")
		raw := formatLocale(cents)

		got := ToDecimal(raw)
		want := decimal.New(cents, -2)
		if !got.Equal(want) {
			t.Fatalf("ToDecimal(%q) = %s, want %s", raw, got, want)
		}
	})
}

func TestToDecimal_Total(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.String().Draw(t, "raw")
		_ = ToDecimal(raw)
		_ = ToBoolean(raw)
	})
}

// formatLocale renders cents as "1.234.567,89".
func formatLocale(cents int64) string {
	whole := fmt.Sprintf("%d", cents/100)
	var groups []string
	for len(whole) > 3 {
		groups = append([]string{whole[len(whole)-3:]}, groups...)
		whole = whole[:len(whole)-3]
	}
	groups = append([]string{whole}, groups...)
	return fmt.Sprintf("%s,%02d", strings.Join(groups, "."), cents%100)
}

func TestToDate(t *testing.T) {
	march15 := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	caracas := time.FixedZone("VET", -4*60*60)

	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"serial float", 45000.0, march15},
		{"serial int", 45000, march15},
		{"serial string", "45000", march15},
		{"iso", "2023-03-15", march15},
		{"iso with time", "2023-03-15 10:30:00", march15},
		{"day first", "15/03/2023", march15},
		{"day first short", "3/4/2023", time.Date(2023, 4, 3, 0, 0, 0, 0, time.UTC)},
		{"day first dashes", "15-03-2023", march15},
		{"native time keeps calendar day", time.Date(2023, 3, 15, 23, 0, 0, 0, caracas), march15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToDate(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}

	for _, in := range []any{nil, "", "   ", "mañana", "32/13/2023", -5.0, time.Time{}} {
		t.Run(fmt.Sprintf("rejects %v", in), func(t *testing.T) {
			_, err := ToDate(in)
			require.ErrorIs(t, err, ErrInvalidDate)
		})
	}
}

func TestToDate_SerialIsMidnightUTC(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		serial := rapid.Float64Range(1, 2958465).Draw(t, "serial")
		got, err := ToDate(serial)
		if err != nil {
			t.Fatalf("ToDate(%v): %v", serial, err)
		}
		if got.Location() != time.UTC || got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
			t.Fatalf("ToDate(%v) = %s, want midnight UTC", serial, got)
		}
	})
}

func TestTextPolicies(t *testing.T) {
	t.Run("title", func(t *testing.T) {
		assert.Equal(t, "Juan Pérez", Title("  juan   PÉREZ "))
		assert.Equal(t, "Av. Bolívar, Casa 12", Title("av. bolívar, casa 12"))
		assert.Equal(t, "", Title(nil))
	})

	t.Run("upper", func(t *testing.T) {
		assert.Equal(t, "MÉRIDA", Upper(" mérida "))
		assert.Equal(t, "ALCALDÍA DE LIBERTADOR", Upper("alcaldía  de libertador"))
	})

	t.Run("upper without diacritics", func(t *testing.T) {
		assert.Equal(t, "MERIDA", UpperNoDiacritics("Mérida"))
		assert.Equal(t, "TACHIRA", UpperNoDiacritics("táchira"))
		assert.Equal(t, "", UpperNoDiacritics("nan"))
	})

	t.Run("tax id", func(t *testing.T) {
		assert.Equal(t, "V12345678", TaxID("v-12.345.678"))
		assert.Equal(t, "J301234567", TaxID("J-30123456-7"))
		assert.Equal(t, "12345678", TaxID(12345678.0))
		assert.Equal(t, "12345678", TaxID("12345678.0"))
	})

	t.Run("optional upper", func(t *testing.T) {
		assert.Nil(t, OptionalUpper(""))
		assert.Nil(t, OptionalUpper("  "))
		ref := OptionalUpper(" ref-001 ")
		require.NotNil(t, ref)
		assert.Equal(t, "REF-001", *ref)
	})

	t.Run("text collapses whitespace", func(t *testing.T) {
		assert.Equal(t, "pago de tasa", Text(" pago \t de\ntasa "))
		assert.True(t, IsBlank(" nan "))
		assert.False(t, IsBlank("0"))
	})
}
