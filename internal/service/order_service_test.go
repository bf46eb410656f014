package service

import (
	"context"
	"testing"
	"time"

	"github.com/younger1612/Rd-storev1/internal/apierror"
	"github.com/younger1612/Rd-storev1/internal/dto"
	"github.com/younger1612/Rd-storev1/internal/model"
	"github.com/younger1612/Rd-storev1/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingOrderRepo keeps orders in memory and records every whitelist patch
// so tests can inspect exactly which columns a service update touched.
type recordingOrderRepo struct {
	orders      map[uuid.UUID]*model.Order
	lastUpdates map[string]interface{}
}

func newRecordingOrderRepo() *recordingOrderRepo {
	return &recordingOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *recordingOrderRepo) CreateTx(_ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = time.Now()
	o.OrderDate = time.Now()
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
	}
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *recordingOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *recordingOrderRepo) List(_ context.Context) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *recordingOrderRepo) UpdateFieldsTx(_ *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	r.lastUpdates = updates
	o, ok := r.orders[id]
	if !ok {
		return 0, nil
	}
	if v, ok := updates["status"]; ok {
		o.Status = v.(string)
	}
	if v, ok := updates["customer_name"]; ok {
		o.CustomerName = v.(string)
	}
	if v, ok := updates["total_amount"]; ok {
		o.TotalAmount = v.(decimal.Decimal)
	}
	return 1, nil
}

func (r *recordingOrderRepo) ReplaceItemsTx(_ *gorm.DB, orderID uuid.UUID, items []model.OrderItem) error {
	o, ok := r.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range items {
		items[i].OrderID = orderID
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	o.Items = items
	return nil
}

func (r *recordingOrderRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *recordingOrderRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.orders[id]
	return ok, nil
}

func (r *recordingOrderRepo) CountItemsByProductTx(_ *gorm.DB, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *recordingOrderRepo) DB() *gorm.DB { return nil }

var _ repository.OrderRepository = (*recordingOrderRepo)(nil)

func deci(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func validOrderRequest() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		CustomerName: "Alex",
		TotalAmount:  deci("1500.00"),
		Items: []dto.OrderItemRequest{
			{ProductName: "Widget", Quantity: 5, Price: decimal.RequireFromString("300.00")},
		},
	}
}

func TestCreateOrderRequiresItems(t *testing.T) {
	svc := NewOrderService(newRecordingOrderRepo())
	req := validOrderRequest()
	req.Items = nil
	_, err := svc.Create(context.Background(), req)
	assert.Equal(t, apierror.Validation, kindOf(t, err))
}

func TestCreateOrderRequiresTotal(t *testing.T) {
	svc := NewOrderService(newRecordingOrderRepo())
	req := validOrderRequest()
	req.TotalAmount = nil
	_, err := svc.Create(context.Background(), req)
	assert.Equal(t, apierror.Validation, kindOf(t, err))
}

func TestCreateOrderDefaultsStatus(t *testing.T) {
	repo := newRecordingOrderRepo()
	svc := NewOrderService(repo)

	created, err := svc.Create(context.Background(), validOrderRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, created.ItemsCount)

	order, err := repo.FindByID(context.Background(), uuid.MustParse(created.ID))
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusAwaitingDeposit, order.Status)
}

func TestUpdateOrderWhitelistsColumns(t *testing.T) {
	repo := newRecordingOrderRepo()
	svc := NewOrderService(repo)
	created, err := svc.Create(context.Background(), validOrderRequest())
	require.NoError(t, err)

	status := model.OrderStatusDeposited
	notes := "deposit received"
	_, err = svc.Update(context.Background(), uuid.MustParse(created.ID), dto.UpdateOrderRequest{
		Status: &status,
		Notes:  &notes,
	})
	require.NoError(t, err)

	// Only the two provided fields reach the column map.
	assert.Len(t, repo.lastUpdates, 2)
	assert.Equal(t, status, repo.lastUpdates["status"])
	assert.Equal(t, notes, repo.lastUpdates["notes"])
}

func TestUpdateOrderReplacesItems(t *testing.T) {
	repo := newRecordingOrderRepo()
	svc := NewOrderService(repo)
	created, err := svc.Create(context.Background(), validOrderRequest())
	require.NoError(t, err)

	items := []dto.OrderItemRequest{
		{ProductName: "Widget", Quantity: 2, Price: decimal.RequireFromString("300.00")},
		{ProductName: "Gadget", Quantity: 1, Price: decimal.RequireFromString("50.00")},
	}
	updated, err := svc.Update(context.Background(), uuid.MustParse(created.ID), dto.UpdateOrderRequest{Items: &items})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.UpdatedItems)

	order, err := repo.FindByID(context.Background(), uuid.MustParse(created.ID))
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Gadget", order.Items[1].ProductName)
}

func TestUpdateOrderRejectsEmptyPatch(t *testing.T) {
	svc := NewOrderService(newRecordingOrderRepo())
	_, err := svc.Update(context.Background(), uuid.New(), dto.UpdateOrderRequest{})
	assert.Equal(t, apierror.Validation, kindOf(t, err))
}

func TestUpdateOrderNotFound(t *testing.T) {
	svc := NewOrderService(newRecordingOrderRepo())
	status := model.OrderStatusDone
	_, err := svc.Update(context.Background(), uuid.New(), dto.UpdateOrderRequest{Status: &status})
	assert.Equal(t, apierror.NotFound, kindOf(t, err))
}

func TestDeleteOrderNotFound(t *testing.T) {
	svc := NewOrderService(newRecordingOrderRepo())
	err := svc.Delete(context.Background(), uuid.New())
	assert.Equal(t, apierror.NotFound, kindOf(t, err))
}

func TestDeleteOrderRemovesOrder(t *testing.T) {
	repo := newRecordingOrderRepo()
	svc := NewOrderService(repo)
	created, err := svc.Create(context.Background(), validOrderRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), uuid.MustParse(created.ID)))
	_, err = svc.Get(context.Background(), uuid.MustParse(created.ID))
	assert.Equal(t, apierror.NotFound, kindOf(t, err))
}

func TestGetOrderComputesSubtotal(t *testing.T) {
	repo := newRecordingOrderRepo()
	svc := NewOrderService(repo)
	created, err := svc.Create(context.Background(), validOrderRequest())
	require.NoError(t, err)

	order, err := svc.Get(context.Background(), uuid.MustParse(created.ID))
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	// 5 × 300 — the generated column is unavailable outside Postgres.
	assert.True(t, order.Items[0].Subtotal.Equal(decimal.RequireFromString("1500.00")))
}
