package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/younger1612/Rd-storev1/internal/apierror"
	"github.com/younger1612/Rd-storev1/internal/dto"
	"github.com/younger1612/Rd-storev1/internal/model"
	"github.com/younger1612/Rd-storev1/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerService is the reconciliation engine: every mutation that must keep
// products, the purchase ledger, the sales ledger and the audit log mutually
// consistent goes through here, inside one transaction per operation.
type LedgerService interface {
	// RecordPurchase inserts a restock row and upserts the target product,
	// blending the weighted-average cost. Purchase insert and product upsert
	// are atomic: one never lands without the other.
	RecordPurchase(ctx context.Context, req dto.RecordPurchaseRequest) (*model.Purchase, error)
	// AdjustStock sets an absolute stock level and appends one audit row.
	// Absolute set means concurrent adjustments are last-writer-wins.
	AdjustStock(ctx context.Context, productID uuid.UUID, req dto.AdjustStockRequest) (*dto.StockAdjustResult, error)
	// AdjustPrice is AdjustStock's twin for the weighted-average unit cost.
	AdjustPrice(ctx context.Context, productID uuid.UUID, req dto.AdjustPriceRequest) (*dto.PriceAdjustResult, error)
	// DeleteProduct removes a product and its audit history, refusing with a
	// Conflict while any purchase or order item still references it.
	DeleteProduct(ctx context.Context, productID uuid.UUID) (string, error)
}

type ledgerService struct {
	products    repository.ProductRepository
	purchases   repository.PurchaseRepository
	adjustments repository.AdjustmentRepository
	orders      repository.OrderRepository
	rdb         *redis.Client
}

func NewLedgerService(
	products repository.ProductRepository,
	purchases repository.PurchaseRepository,
	adjustments repository.AdjustmentRepository,
	orders repository.OrderRepository,
	rdb *redis.Client,
) LedgerService {
	return &ledgerService{
		products:    products,
		purchases:   purchases,
		adjustments: adjustments,
		orders:      orders,
		rdb:         rdb,
	}
}

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (memory mode, unit tests).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// wrapTx passes typed errors through untouched and labels everything else as
// a rolled-back transaction failure.
func wrapTx(msg string, err error) error {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return apierror.NewTxFailure(msg, err)
}

const dateLayout = "2006-01-02"

// ── RecordPurchase ────────────────────────────────────────────────────────────
// Single transaction:
//  1. insert the purchase row (total_cost = quantity × unit_cost)
//  2. resolve the target product — by exact name for custom products, by id
//     otherwise — locking the row FOR UPDATE
//  3. existing product: S₁ = S₀ + q, P₁ = (S₀·P₀ + q·c) / S₁
//     new product: stock = q, price = c
//
// No audit row: the purchase ledger documents itself.

func (s *ledgerService) RecordPurchase(ctx context.Context, req dto.RecordPurchaseRequest) (*model.Purchase, error) {
	purchaseDate, err := time.Parse(dateLayout, req.PurchaseDate)
	if err != nil {
		return nil, apierror.NewValidation("purchaseDate must be YYYY-MM-DD")
	}
	if req.UnitCost.IsNegative() {
		return nil, apierror.NewValidation("unitCost must not be negative")
	}

	var productID *uuid.UUID
	if !req.IsCustomProduct && req.ProductID != nil {
		id, parseErr := uuid.Parse(*req.ProductID)
		if parseErr != nil {
			return nil, apierror.NewValidation("productId is not a valid id")
		}
		productID = &id
	}

	status := req.Status
	if status == "" {
		status = model.PurchaseStatusUnpaid
	}

	quantity := decimal.NewFromInt(int64(req.Quantity))
	purchase := &model.Purchase{
		ProductID:       productID,
		ProductName:     req.ProductName,
		IsCustomProduct: req.IsCustomProduct,
		Quantity:        req.Quantity,
		UnitCost:        req.UnitCost,
		TotalCost:       req.UnitCost.Mul(quantity),
		PurchaseDate:    purchaseDate,
		Supplier:        req.Supplier,
		Notes:           req.Notes,
		Status:          status,
	}

	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := s.purchases.CreateTx(tx, purchase); err != nil {
			return err
		}

		switch {
		case req.IsCustomProduct:
			existing, err := s.products.FindByNameForUpdateTx(tx, req.ProductName)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// First intake of this name — the product is born from the purchase.
				return s.products.CreateTx(tx, &model.Product{
					Name:         req.ProductName,
					Category:     model.CategoryCustom,
					CurrentStock: req.Quantity,
					CurrentPrice: req.UnitCost,
					Specs:        map[string]string{},
				})
			}
			if err != nil {
				return err
			}
			return s.blendIntake(tx, existing, req.Quantity, req.UnitCost)

		case productID != nil:
			existing, err := s.products.FindByIDForUpdateTx(tx, *productID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return s.products.CreateTx(tx, &model.Product{
					ID:           *productID,
					Name:         req.ProductName,
					Category:     model.CategoryCustom,
					CurrentStock: req.Quantity,
					CurrentPrice: req.UnitCost,
					Specs:        map[string]string{},
				})
			}
			if err != nil {
				return err
			}
			return s.blendIntake(tx, existing, req.Quantity, req.UnitCost)
		}

		// Neither an id nor the custom flag: ledger entry only.
		return nil
	})
	if txErr != nil {
		return nil, wrapTx("failed to record purchase", txErr)
	}

	invalidateProductCache(ctx, s.rdb)
	log.Info().
		Str("product", req.ProductName).
		Int("quantity", req.Quantity).
		Str("unit_cost", req.UnitCost.String()).
		Msg("purchase recorded")
	return purchase, nil
}

// blendIntake folds a new intake into an existing product's stock and
// weighted-average cost, inside the caller's transaction.
func (s *ledgerService) blendIntake(tx *gorm.DB, p *model.Product, quantity int, unitCost decimal.Decimal) error {
	newStock := p.CurrentStock + quantity

	newPrice := unitCost
	if newStock != 0 {
		oldValue := p.CurrentPrice.Mul(decimal.NewFromInt(int64(p.CurrentStock)))
		intakeValue := unitCost.Mul(decimal.NewFromInt(int64(quantity)))
		newPrice = oldValue.Add(intakeValue).DivRound(decimal.NewFromInt(int64(newStock)), 2)
	}

	return s.products.UpdateStockAndPriceTx(tx, p.ID, newStock, newPrice)
}

// ── AdjustStock / AdjustPrice ─────────────────────────────────────────────────

func (s *ledgerService) AdjustStock(ctx context.Context, productID uuid.UUID, req dto.AdjustStockRequest) (*dto.StockAdjustResult, error) {
	newStock := req.NewStock()
	if newStock == nil {
		return nil, apierror.NewValidation("stock value is required")
	}
	reason := req.Reason
	if reason == "" {
		reason = "manual stock adjustment"
	}

	var result dto.StockAdjustResult
	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		product, err := s.products.FindByIDForUpdateTx(tx, productID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NewNotFound("product not found")
		}
		if err != nil {
			return err
		}

		oldStock := product.CurrentStock
		if err := s.products.UpdateStockTx(tx, productID, *newStock); err != nil {
			return err
		}
		if err := s.adjustments.CreateTx(tx, &model.StockAdjustment{
			ProductID:      productID,
			ProductName:    product.Name,
			AdjustmentType: model.AdjustmentTypeStock,
			OldValue:       decimal.NewFromInt(int64(oldStock)),
			NewValue:       decimal.NewFromInt(int64(*newStock)),
			Reason:         reason,
		}); err != nil {
			return err
		}

		result = dto.StockAdjustResult{
			Success:   true,
			Message:   fmt.Sprintf("stock updated: %s %d -> %d", product.Name, oldStock, *newStock),
			ProductID: productID.String(),
			OldStock:  oldStock,
			NewStock:  *newStock,
		}
		return nil
	})
	if txErr != nil {
		return nil, wrapTx("failed to adjust stock", txErr)
	}

	invalidateProductCache(ctx, s.rdb)
	return &result, nil
}

func (s *ledgerService) AdjustPrice(ctx context.Context, productID uuid.UUID, req dto.AdjustPriceRequest) (*dto.PriceAdjustResult, error) {
	newPrice := req.NewPrice()
	if newPrice == nil {
		return nil, apierror.NewValidation("price value is required")
	}
	if newPrice.IsNegative() {
		return nil, apierror.NewValidation("price must not be negative")
	}
	reason := req.Reason
	if reason == "" {
		reason = "manual price adjustment"
	}

	var result dto.PriceAdjustResult
	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		product, err := s.products.FindByIDForUpdateTx(tx, productID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NewNotFound("product not found")
		}
		if err != nil {
			return err
		}

		oldPrice := product.CurrentPrice
		if err := s.products.UpdatePriceTx(tx, productID, *newPrice); err != nil {
			return err
		}
		if err := s.adjustments.CreateTx(tx, &model.StockAdjustment{
			ProductID:      productID,
			ProductName:    product.Name,
			AdjustmentType: model.AdjustmentTypePrice,
			OldValue:       oldPrice,
			NewValue:       *newPrice,
			Reason:         reason,
		}); err != nil {
			return err
		}

		result = dto.PriceAdjustResult{
			Success:   true,
			Message:   fmt.Sprintf("price updated: %s %s -> %s", product.Name, oldPrice.String(), newPrice.String()),
			ProductID: productID.String(),
			OldPrice:  oldPrice,
			NewPrice:  *newPrice,
		}
		return nil
	})
	if txErr != nil {
		return nil, wrapTx("failed to adjust price", txErr)
	}

	invalidateProductCache(ctx, s.rdb)
	return &result, nil
}

// ── DeleteProduct ─────────────────────────────────────────────────────────────

func (s *ledgerService) DeleteProduct(ctx context.Context, productID uuid.UUID) (string, error) {
	var name string
	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		product, err := s.products.FindByIDForUpdateTx(tx, productID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NewNotFound("product not found")
		}
		if err != nil {
			return err
		}
		name = product.Name

		purchaseRefs, err := s.purchases.CountByProductTx(tx, productID)
		if err != nil {
			return err
		}
		itemRefs, err := s.orders.CountItemsByProductTx(tx, productID)
		if err != nil {
			return err
		}
		if purchaseRefs > 0 || itemRefs > 0 {
			return apierror.NewConflict(fmt.Sprintf(
				"cannot delete product %q: referenced by %d purchase record(s) and %d order item(s)",
				product.Name, purchaseRefs, itemRefs))
		}

		// The audit history goes with the product; purchases and order items
		// were just proven absent.
		if err := s.adjustments.DeleteByProductTx(tx, productID); err != nil {
			return err
		}
		return s.products.DeleteTx(tx, productID)
	})
	if txErr != nil {
		return "", wrapTx("failed to delete product", txErr)
	}

	invalidateProductCache(ctx, s.rdb)
	return name, nil
}
