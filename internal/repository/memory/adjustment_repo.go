package memory

import (
	"context"
	"time"

	"github.com/younger1612/Rd-storev1/internal/model"
	"github.com/younger1612/Rd-storev1/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type adjustmentRepo struct{ store *Store }

func NewAdjustmentRepository(store *Store) repository.AdjustmentRepository {
	return &adjustmentRepo{store: store}
}

func (r *adjustmentRepo) CreateTx(_ *gorm.DB, a *model.StockAdjustment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	cp := *a
	r.store.adjustments = append(r.store.adjustments, &cp)
	return nil
}

func (r *adjustmentRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]model.StockAdjustment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []model.StockAdjustment
	// adjustments are appended in order; walk backwards for newest first
	for i := len(r.store.adjustments) - 1; i >= 0; i-- {
		if r.store.adjustments[i].ProductID == productID {
			out = append(out, *r.store.adjustments[i])
		}
	}
	return out, nil
}

func (r *adjustmentRepo) DeleteByProductTx(_ *gorm.DB, productID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.adjustments[:0]
	for _, a := range r.store.adjustments {
		if a.ProductID != productID {
			kept = append(kept, a)
		}
	}
	r.store.adjustments = kept
	return nil
}
