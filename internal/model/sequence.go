package model

import "time"

// SequenceReceipts names the row guarding receipt number allocation.
const SequenceReceipts = "receipts"

// ReceiptSequence is the lock row of the receipt number allocator.
// LastIssued survives record purges so numbers are never handed out twice.
type ReceiptSequence struct {
	Name       string    `gorm:"type:varchar(50);primaryKey" json:"name"`
	LastIssued int64     `gorm:"not null;default:0" json:"last_issued"`
	UpdatedAt  time.Time `json:"updated_at"`
}
