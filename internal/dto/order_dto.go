package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest is one line of an order draft. Price/Cost keep the front
// end's historical field names (unit price and unit cost basis). Specs is a
// per-order snapshot, editable independently of the product.
type OrderItemRequest struct {
	ProductID   *string           `json:"productId"   validate:"omitempty,uuid"`
	ProductName string            `json:"productName" validate:"required,min=1,max=255"`
	Quantity    int               `json:"quantity"    validate:"required,gt=0"`
	Price       decimal.Decimal   `json:"price"       validate:"min=0"`
	Cost        decimal.Decimal   `json:"cost"`
	Specs       map[string]string `json:"specs"`
}

type CreateOrderRequest struct {
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	CustomerEmail string             `json:"customer_email"`
	CustomerLink  string             `json:"customer_link"`
	TotalAmount   *decimal.Decimal   `json:"total_amount"`
	Cost          decimal.Decimal    `json:"cost"`
	Status        string             `json:"status"` // defaults to awaiting_deposit
	Notes         string             `json:"notes"`
	Items         []OrderItemRequest `json:"items" validate:"omitempty,dive"`
}

// UpdateOrderRequest is the whitelist patch for scalar order fields; when
// Items is present the entire item list is replaced (delete-all-then-insert).
type UpdateOrderRequest struct {
	CustomerName  *string             `json:"customer_name"`
	CustomerPhone *string             `json:"customer_phone"`
	CustomerEmail *string             `json:"customer_email"`
	CustomerLink  *string             `json:"customer_link"`
	TotalAmount   *decimal.Decimal    `json:"total_amount"`
	Status        *string             `json:"status"`
	Notes         *string             `json:"notes"`
	Cost          *decimal.Decimal    `json:"cost"`
	Items         *[]OrderItemRequest `json:"items" validate:"omitempty,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderCreatedData struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	ItemsCount int       `json:"items_count"`
}

type OrderUpdatedData struct {
	ID           string `json:"id"`
	UpdatedItems int    `json:"updated_items"`
}

// OrderItemResponse is an order line expanded with the live product category
// (left join — custom items have none).
type OrderItemResponse struct {
	ID              string            `json:"id"`
	OrderID         string            `json:"order_id"`
	ProductID       *string           `json:"product_id"`
	ProductName     string            `json:"product_name"`
	ProductCategory string            `json:"product_category,omitempty"`
	Quantity        int               `json:"quantity"`
	UnitPrice       decimal.Decimal   `json:"unit_price"`
	UnitCost        decimal.Decimal   `json:"unit_cost"`
	Subtotal        decimal.Decimal   `json:"subtotal"`
	Specs           map[string]string `json:"specs"`
	CreatedAt       time.Time         `json:"created_at"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerName  string              `json:"customer_name"`
	CustomerPhone string              `json:"customer_phone"`
	CustomerEmail string              `json:"customer_email"`
	CustomerLink  string              `json:"customer_link"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Cost          decimal.Decimal     `json:"cost"`
	OrderDate     string              `json:"order_date"`
	Status        string              `json:"status"`
	Notes         string              `json:"notes"`
	CreatedAt     time.Time           `json:"created_at"`
	Items         []OrderItemResponse `json:"items"`
}
