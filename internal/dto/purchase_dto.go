package dto

import "github.com/shopspring/decimal"

// RecordPurchaseRequest creates one restock ledger entry. Either ProductID
// targets an existing catalog row, or IsCustomProduct resolves the target by
// exact name (creating it on first intake). total_cost is computed
// server-side as quantity × unit_cost — never taken from the client.
type RecordPurchaseRequest struct {
	ProductID       *string         `json:"productId"       validate:"omitempty,uuid"`
	ProductName     string          `json:"productName"     validate:"required,min=1,max=255"`
	IsCustomProduct bool            `json:"isCustomProduct"`
	Quantity        int             `json:"quantity"        validate:"required,gt=0"`
	UnitCost        decimal.Decimal `json:"unitCost"        validate:"min=0"`
	PurchaseDate    string          `json:"purchaseDate"    validate:"required"` // YYYY-MM-DD
	Supplier        string          `json:"supplier"`
	Notes           string          `json:"notes"`
	Status          string          `json:"status"` // defaults to unpaid
}

// UpdatePurchaseRequest edits purchase fields only. It deliberately does NOT
// reconcile product stock or the weighted-average cost — historical intakes
// are not replayed.
type UpdatePurchaseRequest struct {
	Quantity     *int             `json:"quantity"     validate:"omitempty,gt=0"`
	UnitCost     *decimal.Decimal `json:"unitCost"`
	Supplier     *string          `json:"supplier"`
	Notes        *string          `json:"notes"`
	Status       *string          `json:"status"`
	PurchaseDate *string          `json:"purchaseDate"`
}

// PurchaseFilter bounds the ledger listing; both bounds optional.
type PurchaseFilter struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}
