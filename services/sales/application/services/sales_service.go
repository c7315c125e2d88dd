package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/retailseed/pkg/logger"
	"github.com/ghuser/retailseed/services/sales/domain/models"
	"github.com/ghuser/retailseed/services/sales/domain/repositories"
	domainsvcs "github.com/ghuser/retailseed/services/sales/domain/services"
)

// SeedParams configure one sales run.
type SeedParams struct {
	// RunID names the run; uuid.Nil draws a new one.
	RunID uuid.UUID
	Count int
	// Window is the inclusive range transaction dates are drawn from.
	Window models.Window
	// Seed fixes every random draw of the run. Zero picks a random seed,
	// which is recorded so the run can be replayed.
	Seed uint64
}

// SalesService turns the catalog snapshot into persisted sales.
type SalesService struct {
	catalog repositories.CatalogReader
	sink    repositories.SalesSink
	runs    repositories.SeedRunRepository
	log     logger.Logger
	metrics *salesMetrics
	now     func() time.Time
}

func NewSalesService(
	catalog repositories.CatalogReader,
	sink repositories.SalesSink,
	runs repositories.SeedRunRepository,
	log logger.Logger,
) *SalesService {
	return &SalesService{
		catalog: catalog,
		sink:    sink,
		runs:    runs,
		log:     log,
		metrics: newSalesMetrics(otel.Meter(instrumentationName)),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Seed snapshots the catalog, synthesizes p.Count transactions, persists
// transactions and then line items (each in its own commit) and finally
// records the run summary, which also publishes sales.seeded.
//
// A persistence failure is returned as is; batches already committed stay.
func (s *SalesService) Seed(ctx context.Context, p SeedParams) (*models.SeedRun, error) {
	if p.RunID == uuid.Nil {
		p.RunID = uuid.New()
	}
	if p.Seed == 0 {
		p.Seed = rand.Uint64()
	}
	ctx = logger.WithSeedRunID(ctx, p.RunID.String())
	ctx, span := tracer.Start(ctx, "sales.seed_sales", trace.WithAttributes(
		attribute.String("seed_run.id", p.RunID.String()),
		attribute.Int("seed_run.transaction_count", p.Count),
	))
	defer span.End()

	startedAt := s.now()

	req, err := s.snapshot(ctx, p)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	batch, err := domainsvcs.NewSeededSynthesizer(p.Seed).Synthesize(req)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("synthesize sales: %w", err)
	}
	s.log.InfoContext(ctx, "sales synthesized",
		"transactions", len(batch.Transactions),
		"line_items", len(batch.LineItems),
		"seed", p.Seed,
	)

	if err := s.persist(ctx, p.RunID, batch); err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	run := &models.SeedRun{
		ID:               p.RunID,
		Seed:             p.Seed,
		TransactionCount: len(batch.Transactions),
		LineItemCount:    len(batch.LineItems),
		GrossTotal:       batch.GrossTotal(),
		Window:           p.Window,
		StartedAt:        startedAt,
		FinishedAt:       s.now(),
	}
	if err := s.runs.RecordRun(ctx, run); err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("record seed run: %w", err)
	}

	s.metrics.duration.Record(ctx, run.FinishedAt.Sub(run.StartedAt).Seconds())
	s.log.InfoContext(ctx, "sales seeded",
		"transactions", run.TransactionCount,
		"line_items", run.LineItemCount,
		"gross_total", run.GrossTotal.StringFixed(2),
	)
	return run, nil
}

func (s *SalesService) snapshot(ctx context.Context, p SeedParams) (domainsvcs.SynthesisRequest, error) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return domainsvcs.SynthesisRequest{}, fmt.Errorf("load products: %w", err)
	}
	storeIDs, err := s.catalog.ListStoreIDs(ctx)
	if err != nil {
		return domainsvcs.SynthesisRequest{}, fmt.Errorf("load store ids: %w", err)
	}

	priced := make([]models.PricedSKU, len(products))
	for i, prod := range products {
		priced[i] = prod.Priced()
	}
	return domainsvcs.SynthesisRequest{
		Catalog:  priced,
		StoreIDs: storeIDs,
		Count:    p.Count,
		Window:   p.Window,
	}, nil
}

func (s *SalesService) persist(ctx context.Context, runID uuid.UUID, batch *models.SalesBatch) error {
	if err := s.sink.SaveTransactions(ctx, runID, batch.Transactions); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	s.metrics.transactions.Add(ctx, int64(len(batch.Transactions)))

	if err := s.sink.SaveLineItems(ctx, runID, batch.LineItems); err != nil {
		return fmt.Errorf("save line items: %w", err)
	}
	s.metrics.lineItems.Add(ctx, int64(len(batch.LineItems)))
	return nil
}
