package infra

import (
	"fmt"

	"github.com/younger1612/Rd-storev1/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx. Migrations run
// separately so callers decide whether a migration failure is fatal.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates/updates the schema. Also used by integration tests
// against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Product{},
		&model.Purchase{},
		&model.StockAdjustment{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate may skip on
// pre-existing tables. The subtotal generated column is declared on the model
// as read-only, so on an old schema where it exists as a plain column it must
// be rebuilt as GENERATED — a plain column could drift from quantity×unit_price.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.columns
		             WHERE table_name = 'order_items' AND column_name = 'subtotal'
		               AND is_generated = 'NEVER') THEN
		    ALTER TABLE order_items DROP COLUMN subtotal;
		    ALTER TABLE order_items ADD COLUMN subtotal DECIMAL(12,2)
		        GENERATED ALWAYS AS (quantity * unit_price) STORED;
		  END IF;
		END $$`,
		`CREATE INDEX IF NOT EXISTS idx_stock_adjustments_product
		     ON stock_adjustments (product_id, created_at)`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
