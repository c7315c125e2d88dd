package services

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/ghuser/retailseed/pkg/idgen"
	"github.com/ghuser/retailseed/pkg/logger"
	"github.com/ghuser/retailseed/services/sales/domain/repositories"
	domainsvcs "github.com/ghuser/retailseed/services/sales/domain/services"
)

// CatalogService seeds the product catalog.
type CatalogService struct {
	repo repositories.ProductWriter
	rng  *rand.Rand
	ids  idgen.Generator
	log  logger.Logger
}

func NewCatalogService(repo repositories.ProductWriter, rng *rand.Rand, ids idgen.Generator, log logger.Logger) *CatalogService {
	return &CatalogService{repo: repo, rng: rng, ids: ids, log: log}
}

// Seed writes the default catalog when the product table is empty and
// returns the number of products written. A populated catalog is left as is
// so repeated runs sell from the same skus.
func (s *CatalogService) Seed(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "sales.seed_products")
	defer span.End()

	existing, err := s.repo.CountProducts(ctx)
	if err != nil {
		recordSpanError(span, err)
		return 0, fmt.Errorf("count products: %w", err)
	}
	if existing > 0 {
		s.log.InfoContext(ctx, "catalog already seeded", "products", existing)
		return 0, nil
	}

	catalog := domainsvcs.DefaultCatalog(s.rng, s.ids)
	for i, p := range catalog {
		valid, err := domainsvcs.ValidateProduct(p)
		if err != nil {
			return 0, err
		}
		catalog[i] = valid
	}

	if err := s.repo.SaveProducts(ctx, catalog); err != nil {
		recordSpanError(span, err)
		return 0, fmt.Errorf("save products: %w", err)
	}
	s.log.InfoContext(ctx, "catalog seeded", "products", len(catalog))
	return len(catalog), nil
}
