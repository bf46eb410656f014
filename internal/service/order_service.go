package service

import (
	"context"
	"errors"

	"github.com/younger1612/Rd-storev1/internal/apierror"
	"github.com/younger1612/Rd-storev1/internal/dto"
	"github.com/younger1612/Rd-storev1/internal/model"
	"github.com/younger1612/Rd-storev1/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService interface {
	// Create records the sale with its item snapshot. It never touches product
	// stock: the cart mirror issues its own stock adjustments after the order
	// lands.
	Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderCreatedData, error)
	List(ctx context.Context) ([]dto.OrderResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderUpdatedData, error)
	// Delete removes the order and its items. Stock is NOT restored.
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderService struct {
	orders repository.OrderRepository
}

func NewOrderService(orders repository.OrderRepository) OrderService {
	return &orderService{orders: orders}
}

func (s *orderService) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderCreatedData, error) {
	if len(req.Items) == 0 {
		return nil, apierror.NewValidation("order must contain at least one item")
	}
	if req.TotalAmount == nil {
		return nil, apierror.NewValidation("total_amount is required")
	}

	status := req.Status
	if status == "" {
		status = model.OrderStatusAwaitingDeposit
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		item, err := buildOrderItem(it)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	order := &model.Order{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		CustomerLink:  req.CustomerLink,
		TotalAmount:   *req.TotalAmount,
		Cost:          req.Cost,
		Status:        status,
		Notes:         req.Notes,
		Items:         items,
	}

	txErr := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		return s.orders.CreateTx(tx, order)
	})
	if txErr != nil {
		return nil, wrapTx("failed to create order", txErr)
	}

	log.Info().
		Str("order_id", order.ID.String()).
		Int("items", len(order.Items)).
		Str("total", order.TotalAmount.String()).
		Msg("order created")
	return &dto.OrderCreatedData{
		ID:         order.ID.String(),
		CreatedAt:  order.CreatedAt,
		ItemsCount: len(order.Items),
	}, nil
}

func (s *orderService) List(ctx context.Context) ([]dto.OrderResponse, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, wrapTx("failed to list orders", err)
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return out, nil
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NewNotFound("order not found")
	}
	if err != nil {
		return nil, wrapTx("failed to load order", err)
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// Update patches whitelisted scalar columns and, when Items is present,
// replaces the whole item list. A request with neither is rejected.
func (s *orderService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderUpdatedData, error) {
	updates := map[string]interface{}{}
	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		updates["customer_phone"] = *req.CustomerPhone
	}
	if req.CustomerEmail != nil {
		updates["customer_email"] = *req.CustomerEmail
	}
	if req.CustomerLink != nil {
		updates["customer_link"] = *req.CustomerLink
	}
	if req.TotalAmount != nil {
		updates["total_amount"] = *req.TotalAmount
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Cost != nil {
		updates["cost"] = *req.Cost
	}

	if len(updates) == 0 && req.Items == nil {
		return nil, apierror.NewValidation("no updatable fields provided")
	}

	var newItems []model.OrderItem
	if req.Items != nil {
		newItems = make([]model.OrderItem, 0, len(*req.Items))
		for _, it := range *req.Items {
			item, err := buildOrderItem(it)
			if err != nil {
				return nil, err
			}
			newItems = append(newItems, *item)
		}
	}

	updatedItems := 0
	txErr := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		if len(updates) > 0 {
			matched, err := s.orders.UpdateFieldsTx(tx, id, updates)
			if err != nil {
				return err
			}
			if matched == 0 {
				return apierror.NewNotFound("order not found")
			}
		} else {
			// Items-only patch: the column update can no longer prove existence.
			exists, err := s.orders.Exists(ctx, id)
			if err != nil {
				return err
			}
			if !exists {
				return apierror.NewNotFound("order not found")
			}
		}

		if req.Items != nil {
			if err := s.orders.ReplaceItemsTx(tx, id, newItems); err != nil {
				return err
			}
			updatedItems = len(newItems)
		}
		return nil
	})
	if txErr != nil {
		return nil, wrapTx("failed to update order", txErr)
	}

	return &dto.OrderUpdatedData{ID: id.String(), UpdatedItems: updatedItems}, nil
}

func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	exists, err := s.orders.Exists(ctx, id)
	if err != nil {
		return wrapTx("failed to load order", err)
	}
	if !exists {
		return apierror.NewNotFound("order not found")
	}

	txErr := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		return s.orders.DeleteTx(tx, id)
	})
	if txErr != nil {
		return wrapTx("failed to delete order", txErr)
	}
	return nil
}

func buildOrderItem(it dto.OrderItemRequest) (*model.OrderItem, error) {
	var productID *uuid.UUID
	if it.ProductID != nil && *it.ProductID != "" {
		id, err := uuid.Parse(*it.ProductID)
		if err != nil {
			return nil, apierror.NewValidation("item productId is not a valid id")
		}
		productID = &id
	}
	if it.Quantity <= 0 {
		return nil, apierror.NewValidation("item quantity must be positive")
	}
	if it.Price.IsNegative() {
		return nil, apierror.NewValidation("item price must not be negative")
	}
	specs := it.Specs
	if specs == nil {
		specs = map[string]string{}
	}
	return &model.OrderItem{
		ProductID:   productID,
		ProductName: it.ProductName,
		Quantity:    it.Quantity,
		UnitPrice:   it.Price,
		UnitCost:    it.Cost,
		Specs:       specs,
	}, nil
}

func toOrderResponse(o *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		it := &o.Items[i]
		var productID *string
		if it.ProductID != nil {
			s := it.ProductID.String()
			productID = &s
		}
		category := ""
		if it.Product != nil {
			category = it.Product.Category
		}
		subtotal := it.Subtotal
		if subtotal.IsZero() && it.Quantity > 0 {
			// A freshly inserted row may not have the generated column loaded.
			subtotal = it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		}
		items = append(items, dto.OrderItemResponse{
			ID:              it.ID.String(),
			OrderID:         it.OrderID.String(),
			ProductID:       productID,
			ProductName:     it.ProductName,
			ProductCategory: category,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			UnitCost:        it.UnitCost,
			Subtotal:        subtotal,
			Specs:           it.Specs,
			CreatedAt:       it.CreatedAt,
		})
	}
	return dto.OrderResponse{
		ID:            o.ID.String(),
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		CustomerEmail: o.CustomerEmail,
		CustomerLink:  o.CustomerLink,
		TotalAmount:   o.TotalAmount,
		Cost:          o.Cost,
		OrderDate:     o.OrderDate.Format(dateLayout),
		Status:        o.Status,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
		Items:         items,
	}
}
