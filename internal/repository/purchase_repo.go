package repository

import (
	"context"
	"time"

	"github.com/younger1612/Rd-storev1/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseRepository is the data access contract for the restock ledger.
type PurchaseRepository interface {
	CreateTx(tx *gorm.DB, p *model.Purchase) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error)
	// List returns purchases within the (optional) date bounds, newest first.
	List(ctx context.Context, start, end *time.Time) ([]model.Purchase, error)
	Save(ctx context.Context, p *model.Purchase) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByProductTx(tx *gorm.DB, productID uuid.UUID) (int64, error)
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) CreateTx(tx *gorm.DB, p *model.Purchase) error {
	return tx.Create(p).Error
}

func (r *purchaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	var p model.Purchase
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *purchaseRepo) List(ctx context.Context, start, end *time.Time) ([]model.Purchase, error) {
	q := r.db.WithContext(ctx).Model(&model.Purchase{})
	if start != nil {
		q = q.Where("purchase_date >= ?", *start)
	}
	if end != nil {
		q = q.Where("purchase_date <= ?", *end)
	}
	var purchases []model.Purchase
	err := q.Order("purchase_date DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) Save(ctx context.Context, p *model.Purchase) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *purchaseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Purchase{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *purchaseRepo) CountByProductTx(tx *gorm.DB, productID uuid.UUID) (int64, error) {
	var count int64
	err := tx.Model(&model.Purchase{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}
