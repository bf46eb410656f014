package memory

import (
	"context"

	"github.com/younger1612/Rd-storev1/internal/apierror"
	"github.com/younger1612/Rd-storev1/internal/model"
	"github.com/younger1612/Rd-storev1/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// orderRepo refuses every order operation: orders require durable storage,
// so degraded mode rejects them honestly instead of mocking them.
type orderRepo struct{ store *Store }

func NewOrderRepository(store *Store) repository.OrderRepository {
	return &orderRepo{store: store}
}

func errDegraded() *apierror.Error {
	return apierror.NewDegraded("order operations require database support")
}

func (r *orderRepo) CreateTx(_ *gorm.DB, _ *model.Order) error { return errDegraded() }

func (r *orderRepo) FindByID(_ context.Context, _ uuid.UUID) (*model.Order, error) {
	return nil, errDegraded()
}

func (r *orderRepo) List(_ context.Context) ([]model.Order, error) {
	return nil, errDegraded()
}

func (r *orderRepo) UpdateFieldsTx(_ *gorm.DB, _ uuid.UUID, _ map[string]interface{}) (int64, error) {
	return 0, errDegraded()
}

func (r *orderRepo) ReplaceItemsTx(_ *gorm.DB, _ uuid.UUID, _ []model.OrderItem) error {
	return errDegraded()
}

func (r *orderRepo) DeleteTx(_ *gorm.DB, _ uuid.UUID) error { return errDegraded() }

func (r *orderRepo) Exists(_ context.Context, _ uuid.UUID) (bool, error) {
	return false, errDegraded()
}

// CountItemsByProductTx reports zero rather than failing: the delete guard in
// the ledger must keep working in degraded mode, and without orders nothing
// can reference a product.
func (r *orderRepo) CountItemsByProductTx(_ *gorm.DB, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *orderRepo) DB() *gorm.DB { return nil }
