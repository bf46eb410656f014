package repository

import (
	"context"

	"github.com/younger1612/Rd-storev1/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdjustmentRepository appends to and queries the stock_adjustments audit
// log. Rows are append-only: there is deliberately no update method, and the
// only delete removes a product's whole history when the product itself goes.
type AdjustmentRepository interface {
	CreateTx(tx *gorm.DB, a *model.StockAdjustment) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.StockAdjustment, error)
	DeleteByProductTx(tx *gorm.DB, productID uuid.UUID) error
}

type adjustmentRepo struct{ db *gorm.DB }

func NewAdjustmentRepository(db *gorm.DB) AdjustmentRepository { return &adjustmentRepo{db: db} }

func (r *adjustmentRepo) CreateTx(tx *gorm.DB, a *model.StockAdjustment) error {
	return tx.Create(a).Error
}

func (r *adjustmentRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.StockAdjustment, error) {
	var adjustments []model.StockAdjustment
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&adjustments).Error
	return adjustments, err
}

func (r *adjustmentRepo) DeleteByProductTx(tx *gorm.DB, productID uuid.UUID) error {
	return tx.Delete(&model.StockAdjustment{}, "product_id = ?", productID).Error
}
