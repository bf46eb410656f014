// Package cart is the client-side order draft: an optimistic mirror of
// product stock that is decremented immediately on every line edit, then
// reconciled with the server on submit. The server never decrements stock on
// order creation; the cart pushes the mirrored value itself afterwards.
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/younger1612/Rd-storev1/internal/dto"
	"github.com/younger1612/Rd-storev1/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrOutOfStock        = errors.New("product is out of stock")
	ErrInsufficientStock = errors.New("not enough stock for requested quantity")
	ErrLineNotFound      = errors.New("product is not in the cart")
	ErrEmptyCart         = errors.New("cart is empty")
)

// Backend is what the cart needs from the server: order placement and the
// per-product stock sync that follows a successful placement.
type Backend interface {
	PlaceOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderCreatedData, error)
	SyncStock(ctx context.Context, productID uuid.UUID, newStock int, reason string) error
}

// Line is one draft order line with its product snapshot.
type Line struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	UnitCost    decimal.Decimal
	Specs       map[string]string
}

// CustomerInfo is the buyer block attached on submit.
type CustomerInfo struct {
	Name  string
	Phone string
	Email string
	Link  string
	Notes string
}

// Cart mirrors stock for every product it has seen and keeps the draft lines.
// It is single-user by contract (one browser session), so it carries no lock.
type Cart struct {
	backend Backend
	mirror  map[uuid.UUID]int
	lines   []*Line
}

func New(backend Backend) *Cart {
	return &Cart{backend: backend, mirror: map[uuid.UUID]int{}}
}

// Track seeds the mirror with a product's server-reported stock. Re-tracking
// a product already in the cart is ignored so an open draft survives a
// catalog refresh.
func (c *Cart) Track(p *model.Product) {
	if _, ok := c.mirror[p.ID]; ok {
		return
	}
	c.mirror[p.ID] = p.CurrentStock
}

// MirroredStock reports the optimistic stock for a tracked product.
func (c *Cart) MirroredStock(productID uuid.UUID) (int, bool) {
	s, ok := c.mirror[productID]
	return s, ok
}

// Lines returns the draft lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, *l)
	}
	return out
}

// AddItem puts one unit of the product on the draft, refusing when the
// mirrored stock is exhausted.
func (c *Cart) AddItem(p *model.Product) error {
	c.Track(p)
	if c.mirror[p.ID] <= 0 {
		return fmt.Errorf("%s: %w", p.Name, ErrOutOfStock)
	}
	c.mirror[p.ID]--

	if line := c.find(p.ID); line != nil {
		line.Quantity++
		return nil
	}
	specs := make(map[string]string, len(p.Specs))
	for k, v := range p.Specs {
		specs[k] = v
	}
	c.lines = append(c.lines, &Line{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    1,
		UnitPrice:   p.CurrentPrice,
		UnitCost:    p.CurrentPrice,
		Specs:       specs,
	})
	return nil
}

// SetQuantity moves a line to newQty, adjusting the mirror by the difference.
// Raising the quantity beyond the mirrored stock fails without changes.
func (c *Cart) SetQuantity(productID uuid.UUID, newQty int) error {
	line := c.find(productID)
	if line == nil {
		return ErrLineNotFound
	}
	if newQty <= 0 {
		return c.RemoveItem(productID)
	}

	delta := line.Quantity - newQty
	if delta < 0 && c.mirror[productID] < -delta {
		return fmt.Errorf("%s: %w", line.ProductName, ErrInsufficientStock)
	}
	c.mirror[productID] += delta
	line.Quantity = newQty
	return nil
}

// SetUnitPrice overrides the sale price on a line; the cost basis keeps the
// product's weighted-average value from add time.
func (c *Cart) SetUnitPrice(productID uuid.UUID, price decimal.Decimal) error {
	line := c.find(productID)
	if line == nil {
		return ErrLineNotFound
	}
	line.UnitPrice = price
	return nil
}

// RemoveItem drops a line and hands its quantity back to the mirror.
func (c *Cart) RemoveItem(productID uuid.UUID) error {
	for i, l := range c.lines {
		if l.ProductID == productID {
			c.mirror[productID] += l.Quantity
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// Clear restores the mirror for every line and empties the draft. The caller
// confirms with the user first.
func (c *Cart) Clear() {
	for _, l := range c.lines {
		c.mirror[l.ProductID] += l.Quantity
	}
	c.lines = nil
}

// Total is the draft's sale value, Cost its cost basis.
func (c *Cart) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

func (c *Cart) Cost() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

// Submit places the order, then persists the mirrored decrement with one
// stock-sync call per line. Order placement and the stock syncs are NOT one
// transaction: a sync that fails after the order landed leaves server stock
// behind the mirror until the next manual adjustment. On placement failure
// the mirror is fully restored and the draft kept, so the user can retry.
func (c *Cart) Submit(ctx context.Context, customer CustomerInfo) (*dto.OrderCreatedData, error) {
	if len(c.lines) == 0 {
		return nil, ErrEmptyCart
	}

	total := c.Total()
	items := make([]dto.OrderItemRequest, 0, len(c.lines))
	for _, l := range c.lines {
		id := l.ProductID.String()
		items = append(items, dto.OrderItemRequest{
			ProductID:   &id,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			Price:       l.UnitPrice,
			Cost:        l.UnitCost,
			Specs:       l.Specs,
		})
	}

	created, err := c.backend.PlaceOrder(ctx, dto.CreateOrderRequest{
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
		CustomerEmail: customer.Email,
		CustomerLink:  customer.Link,
		TotalAmount:   &total,
		Cost:          c.Cost(),
		Notes:         customer.Notes,
		Items:         items,
	})
	if err != nil {
		for _, l := range c.lines {
			c.mirror[l.ProductID] += l.Quantity
		}
		return nil, err
	}

	// Best effort: the order exists either way, and a missed sync surfaces as
	// stock drift the operator corrects manually.
	for _, l := range c.lines {
		if syncErr := c.backend.SyncStock(ctx, l.ProductID, c.mirror[l.ProductID], "order sync"); syncErr != nil {
			log.Warn().Err(syncErr).
				Str("product_id", l.ProductID.String()).
				Str("order_id", created.ID).
				Msg("stock sync failed after order placement")
		}
	}

	c.lines = nil
	return created, nil
}

func (c *Cart) find(productID uuid.UUID) *Line {
	for _, l := range c.lines {
		if l.ProductID == productID {
			return l
		}
	}
	return nil
}
