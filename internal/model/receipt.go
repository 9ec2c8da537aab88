package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receipt status enum constants
const (
	StatusPending     = "PENDING"
	StatusPaid        = "PAID"
	StatusUnderReview = "UNDER_REVIEW"
	StatusRejected    = "REJECTED"
	StatusAnnulled    = "ANNULLED"
)

// CategoryCount is the fixed number of regularization flags carried by a receipt.
const CategoryCount = 10

// Receipt is one payment record with a unique consecutive number.
// Status is derived from IsAnnulled; call SyncStatus after any mutation.
type Receipt struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReceiptNumber int64     `gorm:"uniqueIndex;not null" json:"receipt_number"`

	// Client data
	Region            string `gorm:"type:varchar(100)" json:"region"`
	ClientName        string `gorm:"type:varchar(255);not null;index" json:"client_name"`
	ClientTaxID       string `gorm:"column:client_tax_id;type:varchar(50);not null;index" json:"client_tax_id"`
	PropertyAddress   string `gorm:"type:text" json:"property_address"`
	LiquidatingEntity string `gorm:"type:varchar(255)" json:"liquidating_entity"`

	// Regularization categories
	Category1  bool `gorm:"column:category1;default:false" json:"category1"`
	Category2  bool `gorm:"column:category2;default:false" json:"category2"`
	Category3  bool `gorm:"column:category3;default:false" json:"category3"`
	Category4  bool `gorm:"column:category4;default:false" json:"category4"`
	Category5  bool `gorm:"column:category5;default:false" json:"category5"`
	Category6  bool `gorm:"column:category6;default:false" json:"category6"`
	Category7  bool `gorm:"column:category7;default:false" json:"category7"`
	Category8  bool `gorm:"column:category8;default:false" json:"category8"`
	Category9  bool `gorm:"column:category9;default:false" json:"category9"`
	Category10 bool `gorm:"column:category10;default:false" json:"category10"`

	// Amounts
	AdministrativeFee decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"administrative_fee"`
	DailyExchangeRate decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0" json:"daily_exchange_rate"` // 4 fractional digits
	TotalAmount       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total_amount"`

	// Reconciliation
	TransferReference *string   `gorm:"type:varchar(100);uniqueIndex" json:"transfer_reference"`
	TransactionDate   time.Time `gorm:"type:date;not null;index" json:"transaction_date"`
	Reconciled        bool      `gorm:"default:false" json:"reconciled"`
	Concept           string    `gorm:"type:text" json:"concept"`

	// Lifecycle
	Status     string     `gorm:"type:varchar(20);not null;default:'PAID';index" json:"status"`
	IsAnnulled bool       `gorm:"default:false;index" json:"is_annulled"`
	AnnulledBy *string    `gorm:"type:varchar(100)" json:"annulled_by"`
	AnnulledAt *time.Time `json:"annulled_at"`

	CreatedBy string    `gorm:"type:varchar(100);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns the identity when the caller did not.
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// SyncStatus couples Status and the annulment audit fields to IsAnnulled.
func (r *Receipt) SyncStatus() {
	if r.IsAnnulled {
		r.Status = StatusAnnulled
		return
	}
	if r.Status == StatusAnnulled || r.Status == "" {
		r.Status = StatusPaid
	}
	r.AnnulledBy = nil
	r.AnnulledAt = nil
}

// Annul moves an active receipt to the annulled state.
func (r *Receipt) Annul(actor string, at time.Time) {
	r.IsAnnulled = true
	r.AnnulledBy = &actor
	r.AnnulledAt = &at
	r.SyncStatus()
}

// Reverse restores an annulled receipt to PAID and clears the annulment audit.
func (r *Receipt) Reverse() {
	r.IsAnnulled = false
	r.Status = StatusPaid
	r.SyncStatus()
}

// Flags returns the category flags in catalog order.
func (r *Receipt) Flags() [CategoryCount]bool {
	return [CategoryCount]bool{
		r.Category1, r.Category2, r.Category3, r.Category4, r.Category5,
		r.Category6, r.Category7, r.Category8, r.Category9, r.Category10,
	}
}

// SetFlags overwrites all ten category flags.
func (r *Receipt) SetFlags(flags [CategoryCount]bool) {
	r.Category1, r.Category2, r.Category3, r.Category4, r.Category5 = flags[0], flags[1], flags[2], flags[3], flags[4]
	r.Category6, r.Category7, r.Category8, r.Category9, r.Category10 = flags[5], flags[6], flags[7], flags[8], flags[9]
}

// CategoryLabels lists the labels of the flags set on the receipt.
func (r *Receipt) CategoryLabels() []string {
	labels := make([]string, 0, CategoryCount)
	for i, on := range r.Flags() {
		if on {
			labels = append(labels, Categories[i].Label)
		}
	}
	return labels
}

// DisplayNumber is the receipt number zero-padded to four digits.
func (r *Receipt) DisplayNumber() string {
	return FormatNumber(r.ReceiptNumber)
}

// FormatNumber zero-pads a receipt number to four digits.
func FormatNumber(n int64) string {
	return fmt.Sprintf("%04d", n)
}

// IsValidStatus reports whether s is one of the stored status values.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPaid, StatusUnderReview, StatusRejected, StatusAnnulled:
		return true
	}
	return false
}

var statusLabels = map[string]string{
	StatusPending:     "Pendiente",
	StatusPaid:        "Pagado",
	StatusUnderReview: "En revisión",
	StatusRejected:    "Rechazado",
	StatusAnnulled:    "Anulado",
}

// StatusLabel is the display name of a stored status.
func StatusLabel(s string) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return s
}

// ParseStatus accepts "paid", "Paid", "under review", "under_review" and returns the stored constant.
func ParseStatus(s string) (string, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	return normalized, IsValidStatus(normalized)
}
