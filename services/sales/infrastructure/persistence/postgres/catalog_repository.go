package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ghuser/retailseed/pkg/database"
	"github.com/ghuser/retailseed/services/sales/domain/models"
	"github.com/ghuser/retailseed/services/sales/infrastructure/persistence/postgres/db"
)

// CatalogRepository reads and writes products and stores.
type CatalogRepository struct {
	db *database.Database
}

func NewCatalogRepository(database *database.Database) *CatalogRepository {
	return &CatalogRepository{db: database}
}

func (r *CatalogRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := db.New(r.db.DB()).ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	products := make([]models.Product, len(rows))
	for i, row := range rows {
		products[i] = models.Product{
			SKU:      row.Sku,
			Name:     row.Name,
			Price:    row.Price,
			Category: models.Category(row.Category),
			Unit:     models.Unit(row.Unit),
		}
	}
	return products, nil
}

func (r *CatalogRepository) ListStoreIDs(ctx context.Context) ([]string, error) {
	ids, err := db.New(r.db.DB()).ListStoreIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list store ids: %w", err)
	}
	return ids, nil
}

// CountProducts reports how many products the catalog holds.
func (r *CatalogRepository) CountProducts(ctx context.Context) (int, error) {
	n, err := db.New(r.db.DB()).CountProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return int(n), nil
}

// SaveProducts inserts all products in one transaction.
func (r *CatalogRepository) SaveProducts(ctx context.Context, products []models.Product) error {
	rows := make([]db.SalesProduct, len(products))
	for i, p := range products {
		rows[i] = db.SalesProduct{
			Sku:      p.SKU,
			Name:     p.Name,
			Price:    p.Price,
			Category: string(p.Category),
			Unit:     string(p.Unit),
		}
	}
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		for _, chunk := range chunks(rows, db.MaxRowsPerInsert(db.ProductColumns)) {
			if _, err := q.InsertProducts(ctx, chunk); err != nil {
				return mapConstraintError("insert products", err)
			}
		}
		return nil
	})
}

// SaveStores inserts stores in one transaction, leaving existing ids alone.
func (r *CatalogRepository) SaveStores(ctx context.Context, stores []models.Store) (int, error) {
	rows := make([]db.SalesStore, len(stores))
	for i, s := range stores {
		rows[i] = db.SalesStore{
			ID:        s.ID,
			Name:      s.Name,
			State:     s.State,
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
		}
	}
	var inserted int64
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		for _, chunk := range chunks(rows, db.MaxRowsPerInsert(db.StoreColumns)) {
			n, err := q.InsertStores(ctx, chunk)
			if err != nil {
				return mapConstraintError("insert stores", err)
			}
			inserted += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(inserted), nil
}
