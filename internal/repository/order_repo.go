package repository

import (
	"context"

	"github.com/younger1612/Rd-storev1/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository is the data access contract for orders and their items.
// The in-memory implementation refuses every method — orders require durable
// storage.
type OrderRepository interface {
	CreateTx(tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	// UpdateFieldsTx applies a whitelist-validated column map; returns the
	// number of rows matched so callers can distinguish not-found.
	UpdateFieldsTx(tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error)
	// ReplaceItemsTx swaps the full item list: delete-all-then-reinsert.
	ReplaceItemsTx(tx *gorm.DB, orderID uuid.UUID, items []model.OrderItem) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	CountItemsByProductTx(tx *gorm.DB, productID uuid.UUID) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) CreateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.created_at ASC") }).
		Preload("Items.Product").
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.created_at ASC") }).
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) UpdateFieldsTx(tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	res := tx.Model(&model.Order{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *orderRepo) ReplaceItemsTx(tx *gorm.DB, orderID uuid.UUID, items []model.OrderItem) error {
	if err := tx.Delete(&model.OrderItem{}, "order_id = ?", orderID).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = orderID
		if err := tx.Create(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	// The FK cascade would cover the items, but the delete is explicit so the
	// memory store and the database behave identically.
	if err := tx.Delete(&model.OrderItem{}, "order_id = ?", id).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Order{}, "id = ?", id).Error
}

func (r *orderRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *orderRepo) CountItemsByProductTx(tx *gorm.DB, productID uuid.UUID) (int64, error) {
	var count int64
	err := tx.Model(&model.OrderItem{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

func (r *orderRepo) DB() *gorm.DB { return r.db }
