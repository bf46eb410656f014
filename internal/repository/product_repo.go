package repository

import (
	"context"

	"github.com/younger1612/Rd-storev1/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository is the data access contract for products. Services depend
// on this interface, not on the concrete GORM implementation — the in-memory
// degraded-mode store satisfies the same contract.
//
// …Tx methods run inside a caller-owned transaction; callers pass the tx
// handle (nil in memory mode, where each mutation applies directly).
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	CreateTx(tx *gorm.DB, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	// FindByIDForUpdateTx locks the row until the transaction ends, so the
	// weighted-average recomputation cannot race a concurrent intake.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	FindByNameForUpdateTx(tx *gorm.DB, name string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, newStock int) error
	UpdatePriceTx(tx *gorm.DB, id uuid.UUID, newPrice decimal.Decimal) error
	UpdateStockAndPriceTx(tx *gorm.DB, id uuid.UUID, newStock int, newPrice decimal.Decimal) error
	UpdateSpecs(ctx context.Context, id uuid.UUID, specs map[string]string) (*model.Product, error)
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	// Returns nil in memory mode.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) CreateTx(tx *gorm.DB, p *model.Product) error {
	return tx.Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindByNameForUpdateTx(tx *gorm.DB, name string) (*model.Product, error) {
	var p model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("name = ?", name).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, newStock int) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).
		Update("current_stock", newStock).Error
}

func (r *productRepo) UpdatePriceTx(tx *gorm.DB, id uuid.UUID, newPrice decimal.Decimal) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).
		Update("current_price", newPrice).Error
}

func (r *productRepo) UpdateStockAndPriceTx(tx *gorm.DB, id uuid.UUID, newStock int, newPrice decimal.Decimal) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"current_stock": newStock,
		"current_price": newPrice,
	}).Error
}

func (r *productRepo) UpdateSpecs(ctx context.Context, id uuid.UUID, specs map[string]string) (*model.Product, error) {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).
		Update("specs", specs)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *productRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
