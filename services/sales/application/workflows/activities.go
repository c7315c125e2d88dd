package workflows

import (
	"context"
	"errors"

	"go.temporal.io/sdk/temporal"

	"github.com/ghuser/retailseed/services/sales/application/services"
	salesdomain "github.com/ghuser/retailseed/services/sales/domain"
	"github.com/ghuser/retailseed/services/sales/domain/models"
)

// Activities adapts the sales services to Temporal activities.
type Activities struct {
	svc *services.Services
}

func NewActivities(svc *services.Services) *Activities {
	return &Activities{svc: svc}
}

func (a *Activities) SeedStores(ctx context.Context) (int, error) {
	return a.svc.Stores.Seed(ctx)
}

func (a *Activities) SeedProducts(ctx context.Context) (int, error) {
	return a.svc.Catalog.Seed(ctx)
}

// SeedSales fails without retry on bad input: an empty catalog or store list
// will not fix itself between attempts.
func (a *Activities) SeedSales(ctx context.Context, in SeedInput) (*models.SeedRun, error) {
	run, err := a.svc.Sales.Seed(ctx, services.SeedParams{
		RunID:  in.RunID,
		Count:  in.Count,
		Window: in.window(),
		Seed:   in.Seed,
	})
	if errors.Is(err, salesdomain.ErrInvalidConfiguration) {
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), "InvalidConfiguration", err)
	}
	return run, err
}
