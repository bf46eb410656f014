package cart

import (
	"context"

	"github.com/younger1612/Rd-storev1/internal/dto"
	"github.com/younger1612/Rd-storev1/internal/service"

	"github.com/google/uuid"
)

// ServiceBackend runs the cart protocol against in-process services, used by
// the demo tooling and tests. A browser client speaks the same two endpoints
// over HTTP.
type ServiceBackend struct {
	Orders service.OrderService
	Ledger service.LedgerService
}

func (b *ServiceBackend) PlaceOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderCreatedData, error) {
	return b.Orders.Create(ctx, req)
}

func (b *ServiceBackend) SyncStock(ctx context.Context, productID uuid.UUID, newStock int, reason string) error {
	_, err := b.Ledger.AdjustStock(ctx, productID, dto.AdjustStockRequest{Stock: &newStock, Reason: reason})
	return err
}
