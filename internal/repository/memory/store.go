// Package memory is the degraded-mode substitute for the Postgres-backed
// repositories. It is selected once at startup when the database is
// unreachable and mirrors the same entity shapes and response semantics, but
// offers no durability and no transactionality — each mutation is applied
// directly to the in-process collections. Order operations are refused
// outright: orders require durable storage.
package memory

import (
	"sync"
	"time"

	"github.com/younger1612/Rd-storev1/internal/model"

	"github.com/google/uuid"
)

// Store holds the in-process collections shared by the memory repositories.
type Store struct {
	mu          sync.RWMutex
	products    map[uuid.UUID]*model.Product
	purchases   map[uuid.UUID]*model.Purchase
	adjustments []*model.StockAdjustment
}

// NewStore seeds the same demo catalog the UI expects, so the app stays
// demoable without a database.
func NewStore() *Store {
	s := &Store{
		products:  make(map[uuid.UUID]*model.Product),
		purchases: make(map[uuid.UUID]*model.Purchase),
	}

	now := time.Now()
	for _, p := range model.DemoCatalog() {
		p := p
		p.ID = uuid.New()
		p.CreatedAt = now
		p.UpdatedAt = now
		s.products[p.ID] = &p
	}
	return s
}

func copyProduct(p *model.Product) *model.Product {
	cp := *p
	cp.Specs = make(map[string]string, len(p.Specs))
	for k, v := range p.Specs {
		cp.Specs[k] = v
	}
	return &cp
}

func copyPurchase(p *model.Purchase) *model.Purchase {
	cp := *p
	if p.ProductID != nil {
		id := *p.ProductID
		cp.ProductID = &id
	}
	return &cp
}
