package repository

import (
	"context"
	"errors"
	"fmt"

	"recibos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNoTransaction = errors.New("receipt numbers can only be allocated inside a transaction")
	ErrInvalidCount  = errors.New("allocation count must be at least 1")
)

// SequenceRepository hands out consecutive receipt numbers.
type SequenceRepository interface {
	AllocateNext(ctx context.Context, count int) (int64, error)
	LastIssued(ctx context.Context) (int64, error)
}

type sequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) SequenceRepository {
	return &sequenceRepository{db: db}
}

// AllocateNext reserves count consecutive numbers and returns the first one.
//
// The sequence row is locked FOR UPDATE until the surrounding transaction ends, so
// concurrent allocations queue behind each other. The start is one past the larger
// of the highest stored receipt number and the last number ever issued; annulled
// and purged receipts therefore never give their numbers back.
func (r *sequenceRepository) AllocateNext(ctx context.Context, count int) (int64, error) {
	if count < 1 {
		return 0, ErrInvalidCount
	}
	if !InTransaction(ctx) {
		return 0, ErrNoTransaction
	}
	db := GetDB(ctx, r.db)

	seq := model.ReceiptSequence{Name: model.SequenceReceipts}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error; err != nil {
		return 0, fmt.Errorf("ensure sequence row: %w", err)
	}
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&seq, "name = ?", model.SequenceReceipts).Error; err != nil {
		return 0, fmt.Errorf("lock sequence row: %w", err)
	}

	var maxNumber int64
	if err := db.Model(&model.Receipt{}).
		Select("COALESCE(MAX(receipt_number), 0)").
		Scan(&maxNumber).Error; err != nil {
		return 0, fmt.Errorf("read max receipt number: %w", err)
	}

	start := max(maxNumber, seq.LastIssued) + 1
	last := start + int64(count) - 1
	if err := db.Model(&model.ReceiptSequence{}).
		Where("name = ?", model.SequenceReceipts).
		Update("last_issued", last).Error; err != nil {
		return 0, fmt.Errorf("advance sequence: %w", err)
	}

	return start, nil
}

func (r *sequenceRepository) LastIssued(ctx context.Context) (int64, error) {
	var seq model.ReceiptSequence
	err := GetDB(ctx, r.db).First(&seq, "name = ?", model.SequenceReceipts).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return seq.LastIssued, nil
}
