package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionImportReceipts   = "IMPORT_RECEIPTS"
	ActionCreateReceipt    = "CREATE_RECEIPT"
	ActionUpdateReceipt    = "UPDATE_RECEIPT"
	ActionAnnulReceipt     = "ANNUL_RECEIPT"
	ActionReverseAnnulment = "REVERSE_ANNULMENT"
)

// AuditLog tracks Who, What, and When for every receipt mutation
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Actor      string    `gorm:"type:varchar(100);not null;index" json:"actor"`
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string    `gorm:"type:varchar(50);index" json:"entity_id"`        // receipt uuid, or first uuid of a batch
	EntityName string    `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // formatted receipt number or range
	Details    string    `gorm:"type:text" json:"details"`                       // JSON payload of the action
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
