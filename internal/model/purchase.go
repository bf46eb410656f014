package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase statuses. Free-form in the column, these are the two the UI uses.
const (
	PurchaseStatusUnpaid = "unpaid"
	PurchaseStatusPaid   = "paid"
)

// Purchase is one restock ledger entry. ProductID is nil for custom products,
// whose identity is carried by the denormalized ProductName. TotalCost is
// fixed at quantity × unit_cost when the row is created and is never
// re-derived from the product's live price.
type Purchase struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProductID       *uuid.UUID      `gorm:"type:uuid;index" json:"product_id"`
	ProductName     string          `gorm:"not null" json:"product_name"`
	IsCustomProduct bool            `gorm:"not null;default:false" json:"is_custom_product"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_cost"`
	TotalCost       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_cost"`
	PurchaseDate    time.Time       `gorm:"type:date;not null;index" json:"purchase_date"`
	Supplier        string          `json:"supplier"`
	Notes           string          `json:"notes"`
	Status          string          `gorm:"not null;default:'unpaid'" json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}
