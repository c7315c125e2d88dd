package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	pkgcache "github.com/ghuser/retailseed/pkg/cache"
	"github.com/ghuser/retailseed/pkg/logger"
	domainevents "github.com/ghuser/retailseed/services/sales/domain/events"
	"github.com/ghuser/retailseed/services/sales/domain/models"
	"github.com/ghuser/retailseed/services/sales/domain/repositories"
)

const cacheWriteTimeout = 2 * time.Second

// RunCache is the Redis read model of finished runs.
type RunCache interface {
	Get(ctx context.Context, id uuid.UUID) (*pkgcache.RunSummary, error)
	Set(ctx context.Context, s *pkgcache.RunSummary) error
}

// SeedRunQuery serves run summaries, Redis first and Postgres second.
type SeedRunQuery struct {
	repo  repositories.SeedRunRepository
	cache RunCache
	log   logger.Logger
}

// NewSeedRunQuery accepts a nil cache, in which case every read hits Postgres.
func NewSeedRunQuery(repo repositories.SeedRunRepository, cache RunCache, log logger.Logger) *SeedRunQuery {
	return &SeedRunQuery{repo: repo, cache: cache, log: log}
}

// Get returns ErrSeedRunNotFound when no finished run has id. A Postgres hit
// is written back to the cache before returning.
func (q *SeedRunQuery) Get(ctx context.Context, id uuid.UUID) (*models.SeedRun, error) {
	if q.cache != nil {
		cached, err := q.cache.Get(ctx, id)
		switch {
		case err == nil:
			run, convErr := RunFromSummary(cached)
			if convErr == nil {
				return run, nil
			}
			q.log.WarnContext(ctx, "discarding corrupt cached run", "seed_run_id", id, "error", convErr)
		case !errors.Is(err, redis.Nil):
			q.log.WarnContext(ctx, "run cache read failed", "seed_run_id", id, "error", err)
		}
	}

	run, err := q.repo.GetRun(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get seed run: %w", err)
	}

	if q.cache != nil {
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheWriteTimeout)
		defer cancel()
		if err := q.cache.Set(wctx, SummaryFromRun(run)); err != nil {
			q.log.WarnContext(ctx, "run cache write failed", "seed_run_id", id, "error", err)
		}
	}
	return run, nil
}

// SummaryFromRun converts a run to its cached form.
func SummaryFromRun(run *models.SeedRun) *pkgcache.RunSummary {
	return &pkgcache.RunSummary{
		ID:               run.ID,
		Seed:             run.Seed,
		TransactionCount: run.TransactionCount,
		LineItemCount:    run.LineItemCount,
		GrossTotal:       run.GrossTotal.StringFixed(2),
		WindowStart:      run.Window.Start,
		WindowEnd:        run.Window.End,
		StartedAt:        run.StartedAt,
		FinishedAt:       run.FinishedAt,
	}
}

// SummaryFromEvent converts a sales.seeded payload to its cached form.
func SummaryFromEvent(evt *domainevents.SalesSeededEvent) *pkgcache.RunSummary {
	return &pkgcache.RunSummary{
		ID:               evt.SeedRunID,
		Seed:             evt.Seed,
		TransactionCount: evt.TransactionCount,
		LineItemCount:    evt.LineItemCount,
		GrossTotal:       evt.GrossTotal,
		WindowStart:      evt.WindowStart,
		WindowEnd:        evt.WindowEnd,
		StartedAt:        evt.StartedAt,
		FinishedAt:       evt.FinishedAt,
	}
}

func RunFromSummary(s *pkgcache.RunSummary) (*models.SeedRun, error) {
	total, err := decimal.NewFromString(s.GrossTotal)
	if err != nil {
		return nil, fmt.Errorf("parse gross total %q: %w", s.GrossTotal, err)
	}
	return &models.SeedRun{
		ID:               s.ID,
		Seed:             s.Seed,
		TransactionCount: s.TransactionCount,
		LineItemCount:    s.LineItemCount,
		GrossTotal:       total,
		Window:           models.Window{Start: s.WindowStart, End: s.WindowEnd},
		StartedAt:        s.StartedAt,
		FinishedAt:       s.FinishedAt,
	}, nil
}
