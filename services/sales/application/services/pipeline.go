package services

import (
	"context"
	"fmt"

	"github.com/ghuser/retailseed/pkg/logger"
	"github.com/ghuser/retailseed/services/sales/domain/models"
)

// PipelineResult summarizes one end-to-end pipeline run.
type PipelineResult struct {
	StoresInserted  int
	ProductsCreated int
	Run             *models.SeedRun
}

// Pipeline runs stores, then products, then sales. It is the in-process
// counterpart of the seed workflow.
type Pipeline struct {
	stores  *StoreService
	catalog *CatalogService
	sales   *SalesService
	log     logger.Logger
}

func NewPipeline(stores *StoreService, catalog *CatalogService, sales *SalesService, log logger.Logger) *Pipeline {
	return &Pipeline{stores: stores, catalog: catalog, sales: sales, log: log}
}

func (p *Pipeline) Run(ctx context.Context, params SeedParams) (*PipelineResult, error) {
	ctx, span := tracer.Start(ctx, "sales.pipeline")
	defer span.End()

	var res PipelineResult
	var err error

	if res.StoresInserted, err = p.stores.Seed(ctx); err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("stores stage: %w", err)
	}
	if res.ProductsCreated, err = p.catalog.Seed(ctx); err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("products stage: %w", err)
	}
	if res.Run, err = p.sales.Seed(ctx, params); err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("sales stage: %w", err)
	}

	p.log.InfoContext(logger.WithSeedRunID(ctx, res.Run.ID.String()), "pipeline finished",
		"stores_inserted", res.StoresInserted,
		"products_created", res.ProductsCreated,
	)
	return &res, nil
}
