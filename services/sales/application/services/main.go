package services

import (
	"math/rand/v2"

	"github.com/ghuser/retailseed/pkg/app"
	"github.com/ghuser/retailseed/pkg/cache"
	"github.com/ghuser/retailseed/pkg/idgen"
	"github.com/ghuser/retailseed/services/sales/infrastructure/persistence/postgres"
	"github.com/ghuser/retailseed/services/sales/infrastructure/storesource"
)

// Services is the application-layer container of the sales context.
type Services struct {
	Stores   *StoreService
	Catalog  *CatalogService
	Sales    *SalesService
	Pipeline *Pipeline
	Runs     *SeedRunQuery
}

// New wires the sales services onto a's infrastructure. A nil a.Redis
// disables the run cache and a nil a.EventBus disables sales.seeded.
func New(a *app.Application) *Services {
	cfg := a.Config
	catalogRepo := postgres.NewCatalogRepository(a.Db)
	runRepo := postgres.NewSeedRunRepository(a.Db, a.EventBus)

	source := storesource.New(storesource.Options{
		FilePath: cfg.StoresFilePath,
		URL:      cfg.StoresURL,
		Timeout:  cfg.StoresFetchTimeout,
	}, a.Logger)

	stores := NewStoreService(source, catalogRepo, a.Logger)
	catalog := NewCatalogService(catalogRepo, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), idgen.ShortUUID(), a.Logger)
	sales := NewSalesService(catalogRepo, postgres.NewSalesRepository(a.Db, cfg.InsertBatchSize), runRepo, a.Logger)

	var runCache RunCache
	if a.Redis != nil {
		runCache = cache.NewRunSummaryCache(a.Redis)
	}

	return &Services{
		Stores:   stores,
		Catalog:  catalog,
		Sales:    sales,
		Pipeline: NewPipeline(stores, catalog, sales, a.Logger),
		Runs:     NewSeedRunQuery(runRepo, runCache, a.Logger),
	}
}
