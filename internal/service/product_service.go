package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/younger1612/Rd-storev1/internal/apierror"
	"github.com/younger1612/Rd-storev1/internal/dto"
	"github.com/younger1612/Rd-storev1/internal/model"
	"github.com/younger1612/Rd-storev1/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	productCacheKey = "products:all"
	productCacheTTL = 30 * time.Second
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	ReplaceSpecs(ctx context.Context, id uuid.UUID, specs map[string]string) (*model.Product, error)
	AdjustmentHistory(ctx context.Context, id uuid.UUID) ([]model.StockAdjustment, error)
}

type productService struct {
	products    repository.ProductRepository
	adjustments repository.AdjustmentRepository
	rdb         *redis.Client
}

func NewProductService(products repository.ProductRepository, adjustments repository.AdjustmentRepository, rdb *redis.Client) ProductService {
	return &productService{products: products, adjustments: adjustments, rdb: rdb}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error) {
	if req.CurrentPrice.IsNegative() {
		return nil, apierror.NewValidation("current_price must not be negative")
	}
	specs := req.Specs
	if specs == nil {
		specs = map[string]string{}
	}
	product := &model.Product{
		Name:         req.Name,
		Category:     req.Category,
		CurrentStock: req.CurrentStock,
		CurrentPrice: req.CurrentPrice,
		Specs:        specs,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apierror.NewTxFailure("failed to create product", err)
	}
	invalidateProductCache(ctx, s.rdb)
	return product, nil
}

// List serves the catalog from Redis when a cached copy exists, falling back
// to the repository and repopulating the cache. Cache failures only log; the
// catalog always comes back.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, productCacheKey).Bytes(); err == nil {
			var cached []model.Product
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, apierror.NewTxFailure("failed to list products", err)
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(products); err == nil {
			if err := s.rdb.Set(ctx, productCacheKey, raw, productCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("product cache write failed")
			}
		}
	}
	return products, nil
}

func (s *productService) ReplaceSpecs(ctx context.Context, id uuid.UUID, specs map[string]string) (*model.Product, error) {
	product, err := s.products.UpdateSpecs(ctx, id, specs)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NewNotFound("product not found")
	}
	if err != nil {
		return nil, apierror.NewTxFailure("failed to update specs", err)
	}
	invalidateProductCache(ctx, s.rdb)
	return product, nil
}

func (s *productService) AdjustmentHistory(ctx context.Context, id uuid.UUID) ([]model.StockAdjustment, error) {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("product not found")
		}
		return nil, apierror.NewTxFailure("failed to load product", err)
	}
	history, err := s.adjustments.ListByProduct(ctx, id)
	if err != nil {
		return nil, apierror.NewTxFailure("failed to list adjustments", err)
	}
	return history, nil
}

// invalidateProductCache drops the cached catalog after any mutation that
// touches products. Best effort: a failed DEL only shortens freshness.
func invalidateProductCache(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, productCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("product cache invalidation failed")
	}
}
