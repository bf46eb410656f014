package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name         string            `json:"name"          validate:"required,min=1,max=255"`
	Category     string            `json:"category"      validate:"required,min=1,max=100"`
	CurrentStock int               `json:"current_stock" validate:"min=0"`
	CurrentPrice decimal.Decimal   `json:"current_price" validate:"min=0"`
	Specs        map[string]string `json:"specs"`
}

// AdjustStockRequest accepts either key the front end has historically sent.
type AdjustStockRequest struct {
	Stock        *int   `json:"stock"`
	CurrentStock *int   `json:"current_stock"`
	Reason       string `json:"reason"`
}

// NewStock resolves the two accepted field names; nil when neither was sent.
func (r AdjustStockRequest) NewStock() *int {
	if r.Stock != nil {
		return r.Stock
	}
	return r.CurrentStock
}

type AdjustPriceRequest struct {
	Price        *decimal.Decimal `json:"price"`
	CurrentPrice *decimal.Decimal `json:"current_price"`
	Reason       string           `json:"reason"`
}

func (r AdjustPriceRequest) NewPrice() *decimal.Decimal {
	if r.Price != nil {
		return r.Price
	}
	return r.CurrentPrice
}

type ReplaceSpecsRequest struct {
	Specs map[string]string `json:"specs" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// StockAdjustResult is the wire shape of PUT /products/:id/stock.
type StockAdjustResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ProductID string `json:"productId"`
	OldStock  int    `json:"oldStock"`
	NewStock  int    `json:"newStock"`
}

// PriceAdjustResult is the wire shape of PUT /products/:id/price.
type PriceAdjustResult struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ProductID string          `json:"productId"`
	OldPrice  decimal.Decimal `json:"oldPrice"`
	NewPrice  decimal.Decimal `json:"newPrice"`
}
