package infra

import (
	"fmt"

	"github.com/Shunea/be-easyreserv-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (partial unique indexes).
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

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests against a
// throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Table{},
		&model.Reservation{},
		&model.Ingredient{},
		&model.Product{},
		&model.ProductIngredient{},
		&model.Order{},
		&model.Stock{},
		&model.PlanHistory{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement is guarded so re-running on a patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// The ledger looks stock rows up by (restaurant_id, title) and must
		// find at most one live row. Soft-deleted rows stay behind, so the
		// uniqueness has to be partial — plain uniqueIndex would block
		// re-creating an ingredient after its old row was soft-deleted.
		{"unique live stock per restaurant+title", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uniq_stocks_live_restaurant_title') THEN
    CREATE UNIQUE INDEX uniq_stocks_live_restaurant_title
        ON stocks (restaurant_id, title)
        WHERE deleted_at IS NULL;
  END IF;
END $$`},
		// Board reads fetch live orders per reservation ordered by creation.
		{"live orders per reservation index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_orders_live_reservation') THEN
    CREATE INDEX idx_orders_live_reservation
        ON orders (reservation_id, created_at)
        WHERE deleted_at IS NULL;
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
