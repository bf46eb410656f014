package service

import (
	"context"
	"errors"
	"time"

	"github.com/younger1612/Rd-storev1/internal/apierror"
	"github.com/younger1612/Rd-storev1/internal/dto"
	"github.com/younger1612/Rd-storev1/internal/model"
	"github.com/younger1612/Rd-storev1/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseService interface {
	List(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdatePurchaseRequest) (*model.Purchase, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type purchaseService struct {
	purchases repository.PurchaseRepository
}

func NewPurchaseService(purchases repository.PurchaseRepository) PurchaseService {
	return &purchaseService{purchases: purchases}
}

func (s *purchaseService) List(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, error) {
	var start, end *time.Time
	if filter.StartDate != "" {
		t, err := time.Parse(dateLayout, filter.StartDate)
		if err != nil {
			return nil, apierror.NewValidation("startDate must be YYYY-MM-DD")
		}
		start = &t
	}
	if filter.EndDate != "" {
		t, err := time.Parse(dateLayout, filter.EndDate)
		if err != nil {
			return nil, apierror.NewValidation("endDate must be YYYY-MM-DD")
		}
		end = &t
	}

	purchases, err := s.purchases.List(ctx, start, end)
	if err != nil {
		return nil, apierror.NewTxFailure("failed to list purchases", err)
	}
	return purchases, nil
}

// Update edits ledger fields in place. Product stock and the weighted-average
// cost are NOT re-derived: the product state already absorbed the original
// intake, and replaying history is out of scope for a correction of the
// paperwork.
func (s *purchaseService) Update(ctx context.Context, id uuid.UUID, req dto.UpdatePurchaseRequest) (*model.Purchase, error) {
	purchase, err := s.purchases.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NewNotFound("purchase not found")
	}
	if err != nil {
		return nil, apierror.NewTxFailure("failed to load purchase", err)
	}

	if req.Quantity != nil {
		purchase.Quantity = *req.Quantity
	}
	if req.UnitCost != nil {
		if req.UnitCost.IsNegative() {
			return nil, apierror.NewValidation("unitCost must not be negative")
		}
		purchase.UnitCost = *req.UnitCost
	}
	if req.Supplier != nil {
		purchase.Supplier = *req.Supplier
	}
	if req.Notes != nil {
		purchase.Notes = *req.Notes
	}
	if req.Status != nil {
		if *req.Status != model.PurchaseStatusUnpaid && *req.Status != model.PurchaseStatusPaid {
			return nil, apierror.NewValidation("status must be unpaid or paid")
		}
		purchase.Status = *req.Status
	}
	if req.PurchaseDate != nil {
		t, parseErr := time.Parse(dateLayout, *req.PurchaseDate)
		if parseErr != nil {
			return nil, apierror.NewValidation("purchaseDate must be YYYY-MM-DD")
		}
		purchase.PurchaseDate = t
	}

	purchase.TotalCost = purchase.UnitCost.Mul(decimal.NewFromInt(int64(purchase.Quantity)))

	if err := s.purchases.Save(ctx, purchase); err != nil {
		return nil, apierror.NewTxFailure("failed to update purchase", err)
	}
	return purchase, nil
}

// Delete removes the ledger row only; product stock keeps whatever the intake
// contributed.
func (s *purchaseService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.purchases.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NewNotFound("purchase not found")
	}
	if err != nil {
		return apierror.NewTxFailure("failed to delete purchase", err)
	}
	return nil
}
