package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the catalog entry whose stock and cost the ledger keeps
// consistent. CurrentPrice is a running weighted-average unit cost, blended
// on every purchase intake. Specs is a schemaless key/value attribute map.
type Product struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string            `gorm:"index;not null" json:"name"`
	Category     string            `gorm:"not null" json:"category"`
	CurrentStock int               `gorm:"not null;default:0" json:"current_stock"`
	CurrentPrice decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0" json:"current_price"`
	Specs        map[string]string `gorm:"serializer:json;type:jsonb;default:'{}'" json:"specs"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// CategoryCustom is assigned to products created ad hoc from a purchase of a
// name the catalog has never seen.
const CategoryCustom = "custom"
