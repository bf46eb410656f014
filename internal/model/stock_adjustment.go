package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Adjustment types recorded in the audit log.
const (
	AdjustmentTypeStock = "stock"
	AdjustmentTypePrice = "price"
)

// StockAdjustment is the append-only audit row written by manual stock and
// price edits. Rows are immutable once created. Purchase intake and order
// operations never write here — the purchase ledger documents itself.
type StockAdjustment struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName    string          `gorm:"not null" json:"product_name"`
	AdjustmentType string          `gorm:"not null" json:"adjustment_type"` // "stock" | "price"
	OldValue       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"old_value"`
	NewValue       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"new_value"`
	Reason         string          `gorm:"column:adjustment_reason" json:"reason"`
	CreatedAt      time.Time       `json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}
