package memory

import (
	"context"
	"sort"
	"time"

	"github.com/younger1612/Rd-storev1/internal/model"
	"github.com/younger1612/Rd-storev1/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// productRepo implements repository.ProductRepository over the in-process
// store. The *gorm.DB tx parameters are always nil here and ignored; reads
// report gorm.ErrRecordNotFound so the services map failures identically in
// both modes.
type productRepo struct{ store *Store }

func NewProductRepository(store *Store) repository.ProductRepository {
	return &productRepo{store: store}
}

func (r *productRepo) Create(_ context.Context, p *model.Product) error {
	return r.CreateTx(nil, p)
}

func (r *productRepo) CreateTx(_ *gorm.DB, p *model.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Specs == nil {
		p.Specs = map[string]string{}
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.store.products[p.ID] = copyProduct(p)
	return nil
}

func (r *productRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return copyProduct(p), nil
}

func (r *productRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *productRepo) FindByNameForUpdateTx(_ *gorm.DB, name string) (*model.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, p := range r.store.products {
		if p.Name == name {
			return copyProduct(p), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *productRepo) List(_ context.Context) ([]model.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	products := make([]model.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		products = append(products, *copyProduct(p))
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (r *productRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, newStock int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.CurrentStock = newStock
	p.UpdatedAt = time.Now()
	return nil
}

func (r *productRepo) UpdatePriceTx(_ *gorm.DB, id uuid.UUID, newPrice decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.CurrentPrice = newPrice
	p.UpdatedAt = time.Now()
	return nil
}

func (r *productRepo) UpdateStockAndPriceTx(_ *gorm.DB, id uuid.UUID, newStock int, newPrice decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.CurrentStock = newStock
	p.CurrentPrice = newPrice
	p.UpdatedAt = time.Now()
	return nil
}

func (r *productRepo) UpdateSpecs(_ context.Context, id uuid.UUID, specs map[string]string) (*model.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p.Specs = make(map[string]string, len(specs))
	for k, v := range specs {
		p.Specs[k] = v
	}
	p.UpdatedAt = time.Now()
	return copyProduct(p), nil
}

func (r *productRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.store.products, id)
	return nil
}

// DB returns nil: there is no database, and services fall back to applying
// each step directly instead of opening a transaction.
func (r *productRepo) DB() *gorm.DB { return nil }
