package service

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"recibos/internal/model"
	"recibos/internal/normalize"
	"recibos/internal/repository"

	"github.com/shopspring/decimal"
)

// CriteriaParams is the raw query string form of a receipt filter.
type CriteriaParams struct {
	Search      string `form:"q"`
	SearchField string `form:"field"`
	From        string `form:"from"`
	To          string `form:"to"`
	Status      string `form:"status"`
	Categories  string `form:"categories"` // comma separated, e.g. "1,3"
}

var statusFilterAliases = map[string]string{
	"":         "",
	"all":      "",
	"todos":    "",
	"active":   repository.StatusFilterActive,
	"activo":   repository.StatusFilterActive,
	"activos":  repository.StatusFilterActive,
	"annulled": repository.StatusFilterAnnulled,
	"anulado":  repository.StatusFilterAnnulled,
	"anulados": repository.StatusFilterAnnulled,
}

// ParseCriteria validates raw filter input.
func ParseCriteria(p CriteriaParams) (repository.ReceiptCriteria, error) {
	c := repository.ReceiptCriteria{
		Search:      strings.TrimSpace(p.Search),
		SearchField: strings.ToLower(strings.TrimSpace(p.SearchField)),
	}
	if c.SearchField != "" && !repository.IsSearchField(c.SearchField) {
		return c, fmt.Errorf("%w: unknown search field %q", ErrInvalidCriteria, p.SearchField)
	}

	var err error
	if c.From, err = parseBound("from", p.From); err != nil {
		return c, err
	}
	if c.To, err = parseBound("to", p.To); err != nil {
		return c, err
	}
	if c.From != nil && c.To != nil && c.From.After(*c.To) {
		return c, fmt.Errorf("%w: from date is after to date", ErrInvalidCriteria)
	}

	status := strings.ToLower(strings.TrimSpace(p.Status))
	if alias, ok := statusFilterAliases[status]; ok {
		c.Status = alias
	} else if parsed, ok := model.ParseStatus(status); ok {
		c.Status = parsed
	} else {
		return c, fmt.Errorf("%w: unknown status %q", ErrInvalidCriteria, p.Status)
	}

	for part := range strings.SplitSeq(p.Categories, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		index, convErr := strconv.Atoi(part)
		if _, ok := model.CategoryByIndex(index); convErr != nil || !ok {
			return c, fmt.Errorf("%w: unknown category %q", ErrInvalidCriteria, part)
		}
		if !slices.Contains(c.Categories, index) {
			c.Categories = append(c.Categories, index)
		}
	}

	return c, nil
}

func parseBound(name, raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := normalize.ToDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s date %q", ErrInvalidCriteria, name, raw)
	}
	return &t, nil
}

// Summary aggregates a filtered receipt set.
type Summary struct {
	Count       int
	TotalAmount decimal.Decimal
}

type SummaryResponse struct {
	Count       int    `json:"count"`
	TotalAmount string `json:"total_amount"`
}

// Summarize counts receipts and adds their totals with decimal arithmetic.
func Summarize(receipts []model.Receipt) Summary {
	total := decimal.Zero
	for _, r := range receipts {
		total = total.Add(r.TotalAmount)
	}
	return Summary{Count: len(receipts), TotalAmount: total}
}

func sumAmounts(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

func (s Summary) Response() SummaryResponse {
	return SummaryResponse{Count: s.Count, TotalAmount: s.TotalAmount.StringFixed(2)}
}
