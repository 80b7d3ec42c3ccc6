package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/smallbiznis/supportly/internal/catalog/repository"
	pkgdb "github.com/smallbiznis/supportly/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const loadBatchSize = 200

var serialTables = []string{"brands", "categories", "inventory", "reviews", "product_relations", "order_items"}

// Load inserts the dataset in one transaction. Rows that already exist are
// skipped, so loading the same dataset twice is a no-op.
func Load(ctx context.Context, db *gorm.DB, ds *Dataset) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if ds == nil {
		return errors.New("seed dataset is required")
	}

	repo := repository.Provide()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := insertRows(tx, "brands", ds.Brands); err != nil {
			return err
		}
		if err := insertRows(tx, "categories", ds.Categories); err != nil {
			return err
		}
		if err := insertRows(tx, "products", ds.Products); err != nil {
			return err
		}
		if err := insertRows(tx, "inventory", ds.Inventory); err != nil {
			return err
		}
		if err := insertRows(tx, "reviews", ds.Reviews); err != nil {
			return err
		}
		if err := insertRows(tx, "product_relations", ds.Relations); err != nil {
			return err
		}
		if err := insertRows(tx, "customers", ds.Customers); err != nil {
			return err
		}
		if err := insertRows(tx, "orders", ds.Orders); err != nil {
			return err
		}
		if err := insertRows(tx, "order_items", ds.OrderItems); err != nil {
			return err
		}

		if pkgdb.IsPostgres(tx) {
			for _, table := range serialTables {
				stmt := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), (SELECT COALESCE(MAX(id), 1) FROM %[1]s))`, table)
				if err := tx.Exec(stmt).Error; err != nil {
					return fmt.Errorf("reset %s sequence: %w", table, err)
				}
			}
		}

		return repo.RefreshSearchView(ctx, tx)
	})
}

func insertRows[T any](tx *gorm.DB, table string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&rows, loadBatchSize).Error
	if err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}
