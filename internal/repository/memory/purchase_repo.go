package memory

import (
	"context"
	"sort"
	"time"

	"github.com/younger1612/Rd-storev1/internal/model"
	"github.com/younger1612/Rd-storev1/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type purchaseRepo struct{ store *Store }

func NewPurchaseRepository(store *Store) repository.PurchaseRepository {
	return &purchaseRepo{store: store}
}

func (r *purchaseRepo) CreateTx(_ *gorm.DB, p *model.Purchase) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.store.purchases[p.ID] = copyPurchase(p)
	return nil
}

func (r *purchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Purchase, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.purchases[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return copyPurchase(p), nil
}

func (r *purchaseRepo) List(_ context.Context, start, end *time.Time) ([]model.Purchase, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	purchases := make([]model.Purchase, 0, len(r.store.purchases))
	for _, p := range r.store.purchases {
		if start != nil && p.PurchaseDate.Before(*start) {
			continue
		}
		if end != nil && p.PurchaseDate.After(*end) {
			continue
		}
		purchases = append(purchases, *copyPurchase(p))
	}
	sort.Slice(purchases, func(i, j int) bool {
		return purchases[i].PurchaseDate.After(purchases[j].PurchaseDate)
	})
	return purchases, nil
}

func (r *purchaseRepo) Save(_ context.Context, p *model.Purchase) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.purchases[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	p.UpdatedAt = time.Now()
	r.store.purchases[p.ID] = copyPurchase(p)
	return nil
}

func (r *purchaseRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.purchases[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.store.purchases, id)
	return nil
}

func (r *purchaseRepo) CountByProductTx(_ *gorm.DB, productID uuid.UUID) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var count int64
	for _, p := range r.store.purchases {
		if p.ProductID != nil && *p.ProductID == productID {
			count++
		}
	}
	return count, nil
}
