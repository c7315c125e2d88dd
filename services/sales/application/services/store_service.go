package services

import (
	"context"
	"fmt"

	"github.com/ghuser/retailseed/pkg/logger"
	"github.com/ghuser/retailseed/services/sales/domain/models"
	"github.com/ghuser/retailseed/services/sales/domain/repositories"
)

// StoreSource yields validated stores from the store directory.
type StoreSource interface {
	Fetch(ctx context.Context) ([]models.Store, error)
}

// StoreService loads the store directory into the catalog.
type StoreService struct {
	source StoreSource
	repo   repositories.StoreWriter
	log    logger.Logger
}

func NewStoreService(source StoreSource, repo repositories.StoreWriter, log logger.Logger) *StoreService {
	return &StoreService{source: source, repo: repo, log: log}
}

// Seed fetches and saves stores, returning how many were new. An unreachable
// directory or an empty one is logged and is not an error; a failed save is.
func (s *StoreService) Seed(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "sales.seed_stores")
	defer span.End()

	stores, err := s.source.Fetch(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "store directory unavailable, keeping existing stores", "error", err)
		return 0, nil
	}
	if len(stores) == 0 {
		s.log.WarnContext(ctx, "no stores to load")
		return 0, nil
	}

	inserted, err := s.repo.SaveStores(ctx, stores)
	if err != nil {
		recordSpanError(span, err)
		return 0, fmt.Errorf("save stores: %w", err)
	}
	s.log.InfoContext(ctx, "stores loaded", "received", len(stores), "inserted", inserted)
	return inserted, nil
}
