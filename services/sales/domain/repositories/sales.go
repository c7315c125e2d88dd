package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/retailseed/services/sales/domain/models"
)

// CatalogReader supplies the snapshot a generation run works from.
type CatalogReader interface {
	// ListProducts returns every product in the catalog.
	ListProducts(ctx context.Context) ([]models.Product, error)
	// ListStoreIDs returns the ids of every known store.
	ListStoreIDs(ctx context.Context) ([]string, error)
}

// StoreWriter loads validated stores.
type StoreWriter interface {
	// SaveStores inserts stores in one transaction; ids already present are
	// left untouched. Returns the number of rows inserted.
	SaveStores(ctx context.Context, stores []models.Store) (int, error)
}

// ProductWriter loads validated products.
type ProductWriter interface {
	CountProducts(ctx context.Context) (int, error)
	// SaveProducts inserts products in one transaction.
	SaveProducts(ctx context.Context, products []models.Product) error
}

// SalesSink persists a generated batch. Each call commits its whole batch or
// nothing; the caller decides what to do about a failure.
type SalesSink interface {
	SaveTransactions(ctx context.Context, runID uuid.UUID, txs []models.Transaction) error
	SaveLineItems(ctx context.Context, runID uuid.UUID, items []models.LineItem) error
}

// SeedRunRepository records and reads run summaries.
type SeedRunRepository interface {
	// RecordRun stores the summary and publishes SalesSeededEvent in the same commit.
	RecordRun(ctx context.Context, run *models.SeedRun) error
	// GetRun returns ErrSeedRunNotFound when id is unknown.
	GetRun(ctx context.Context, id uuid.UUID) (*models.SeedRun, error)
}
