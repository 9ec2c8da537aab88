package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"recibos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Search fields accepted by ReceiptCriteria.SearchField.
const (
	SearchFieldName              = "name"
	SearchFieldTaxID             = "tax_id"
	SearchFieldTransferReference = "transfer_reference"
	SearchFieldReceiptNumber     = "receipt_number"
	SearchFieldRegion            = "region"
)

// Synthetic status filters on top of the stored statuses.
const (
	StatusFilterAll      = "all"
	StatusFilterActive   = "active"
	StatusFilterAnnulled = "annulled"
)

var searchColumns = map[string]string{
	SearchFieldName:              "client_name",
	SearchFieldTaxID:             "client_tax_id",
	SearchFieldTransferReference: "transfer_reference",
	SearchFieldRegion:            "region",
}

// IsSearchField reports whether field names a searchable column.
func IsSearchField(field string) bool {
	_, ok := searchColumns[field]
	return ok || field == SearchFieldReceiptNumber
}

// ReceiptCriteria narrows a receipt query. Zero values mean no restriction.
// Categories are 1-based catalog indexes and match when any of them is set.
type ReceiptCriteria struct {
	Search      string
	SearchField string
	From        *time.Time
	To          *time.Time
	Status      string
	Categories  []int
}

type ReceiptRepository interface {
	Create(ctx context.Context, receipt *model.Receipt) error
	CreateBatch(ctx context.Context, receipts []*model.Receipt) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Receipt, error)
	Save(ctx context.Context, receipt *model.Receipt) error
	Query(ctx context.Context, criteria ReceiptCriteria) ([]model.Receipt, error)
	List(ctx context.Context, criteria ReceiptCriteria, page, limit int) ([]model.Receipt, int64, error)
	TotalAmounts(ctx context.Context, criteria ReceiptCriteria) ([]decimal.Decimal, error)
	ExistingReferences(ctx context.Context, refs []string) ([]string, error)
}

type receiptRepository struct {
	db *gorm.DB
}

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *model.Receipt) error {
	return GetDB(ctx, r.db).Create(receipt).Error
}

func (r *receiptRepository) CreateBatch(ctx context.Context, receipts []*model.Receipt) error {
	if len(receipts) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).CreateInBatches(receipts, 100).Error
}

func (r *receiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error) {
	var receipt model.Receipt
	if err := GetDB(ctx, r.db).First(&receipt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

// FindByIDForUpdate locks the row for the rest of the transaction in ctx.
func (r *receiptRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Receipt, error) {
	var receipt model.Receipt
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&receipt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) Save(ctx context.Context, receipt *model.Receipt) error {
	return GetDB(ctx, r.db).Save(receipt).Error
}

func (r *receiptRepository) Query(ctx context.Context, criteria ReceiptCriteria) ([]model.Receipt, error) {
	var receipts []model.Receipt
	if err := GetDB(ctx, r.db).Scopes(criteria.scope, newestFirst).Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

func (r *receiptRepository) List(ctx context.Context, criteria ReceiptCriteria, page, limit int) ([]model.Receipt, int64, error) {
	var receipts []model.Receipt
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Receipt{}).Scopes(criteria.scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Scopes(criteria.scope, newestFirst).Offset(offset).Limit(limit).Find(&receipts).Error; err != nil {
		return nil, 0, err
	}

	return receipts, total, nil
}

// TotalAmounts returns the amount column of the whole filtered set so callers can
// add it with decimal arithmetic instead of a floating point SUM.
func (r *receiptRepository) TotalAmounts(ctx context.Context, criteria ReceiptCriteria) ([]decimal.Decimal, error) {
	var amounts []decimal.Decimal
	if err := GetDB(ctx, r.db).Model(&model.Receipt{}).Scopes(criteria.scope).Pluck("total_amount", &amounts).Error; err != nil {
		return nil, err
	}
	return amounts, nil
}

// ExistingReferences returns which of refs are already stored.
func (r *receiptRepository) ExistingReferences(ctx context.Context, refs []string) ([]string, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	var found []string
	if err := GetDB(ctx, r.db).Model(&model.Receipt{}).
		Where("transfer_reference IN ?", refs).
		Pluck("transfer_reference", &found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("transaction_date DESC").Order("receipt_number DESC")
}

func (c ReceiptCriteria) scope(db *gorm.DB) *gorm.DB {
	if cond, ok := c.searchCondition(); ok {
		db = db.Where(cond)
	}

	if c.From != nil {
		db = db.Where("transaction_date >= ?", *c.From)
	}
	if c.To != nil {
		db = db.Where("transaction_date < ?", c.To.AddDate(0, 0, 1))
	}

	switch c.Status {
	case "", StatusFilterAll:
	case StatusFilterActive:
		db = db.Where("is_annulled = ?", false)
	case StatusFilterAnnulled:
		db = db.Where("is_annulled = ?", true)
	default:
		db = db.Where("status = ?", c.Status)
	}

	if len(c.Categories) > 0 {
		flags := make([]clause.Expression, 0, len(c.Categories))
		for _, index := range c.Categories {
			category, ok := model.CategoryByIndex(index)
			if !ok {
				continue
			}
			flags = append(flags, clause.Eq{Column: clause.Column{Name: category.Column()}, Value: true})
		}
		if len(flags) > 0 {
			db = db.Where(clause.Or(flags...))
		}
	}

	return db
}

func (c ReceiptCriteria) searchCondition() (clause.Expression, bool) {
	term := strings.ToLower(strings.TrimSpace(c.Search))
	if term == "" {
		return nil, false
	}
	like := "%" + term + "%"
	number, numErr := strconv.ParseInt(term, 10, 64)

	if c.SearchField == SearchFieldReceiptNumber {
		if numErr != nil {
			return clause.Expr{SQL: "1 = 0"}, true
		}
		return clause.Eq{Column: clause.Column{Name: "receipt_number"}, Value: number}, true
	}
	if column, ok := searchColumns[c.SearchField]; ok {
		return lowerLike(column, like), true
	}

	conds := []clause.Expression{
		lowerLike("client_name", like),
		lowerLike("client_tax_id", like),
		lowerLike("transfer_reference", like),
		lowerLike("region", like),
	}
	if numErr == nil {
		conds = append(conds, clause.Eq{Column: clause.Column{Name: "receipt_number"}, Value: number})
	}
	return clause.Or(conds...), true
}

func lowerLike(column, pattern string) clause.Expression {
	return clause.Expr{SQL: "LOWER(" + column + ") LIKE ?", Vars: []any{pattern}}
}
