package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order workflow labels. The column is free-form; these are the states the
// front end walks an order through.
const (
	OrderStatusAwaitingDeposit = "awaiting_deposit"
	OrderStatusDeposited       = "deposited"
	OrderStatusProducing       = "producing"
	OrderStatusDone            = "done"
	OrderStatusShipped         = "shipped"
)

// Order owns its items (cascade delete). Creating or deleting an order never
// touches product stock by itself — the client cart performs the stock sync
// as separate adjustment calls.
type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerEmail string          `json:"customer_email"`
	CustomerLink  string          `json:"customer_link"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Cost          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"cost"`
	OrderDate     time.Time       `gorm:"type:date;default:CURRENT_DATE" json:"order_date"`
	Status        string          `gorm:"not null;default:'awaiting_deposit'" json:"status"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is one sales ledger line. Subtotal is a stored generated column
// (quantity × unit_price) maintained by Postgres itself — never writable from
// the application, so it can never drift. Specs is a snapshot copied from the
// product at add time and editable per order without syncing back.
type OrderItem struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OrderID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   *uuid.UUID        `gorm:"type:uuid;index" json:"product_id"`
	ProductName string            `gorm:"not null" json:"product_name"`
	Quantity    int               `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	UnitCost    decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0" json:"unit_cost"`
	Subtotal    decimal.Decimal   `gorm:"->;type:decimal(12,2) GENERATED ALWAYS AS (quantity * unit_price) STORED" json:"subtotal"`
	Specs       map[string]string `gorm:"serializer:json;type:jsonb;default:'{}'" json:"specs"`
	CreatedAt   time.Time         `json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}
