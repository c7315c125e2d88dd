// Package workflows runs the seed pipeline on Temporal: stores, then
// products, then sales, each as its own activity.
package workflows

import (
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/ghuser/retailseed/services/sales/domain/models"
)

// SeedWorkflowID is shared by every pipeline execution so at most one runs
// at a time.
const SeedWorkflowID = "retailseed-seed-pipeline"

// ProgressQuery is the query type answered by SeedWorkflow.
const ProgressQuery = "progress"

// Pipeline stages reported by ProgressQuery.
const (
	StageStores    = "stores"
	StageProducts  = "products"
	StageSales     = "sales"
	StageCompleted = "completed"
	StageFailed    = "failed"
)

// SeedInput is the workflow argument.
type SeedInput struct {
	RunID       uuid.UUID `json:"run_id"`
	Count       int       `json:"count"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	Seed        uint64    `json:"seed"`
}

func (in SeedInput) window() models.Window {
	return models.Window{Start: in.WindowStart, End: in.WindowEnd}
}

// SeedResult is the workflow result.
type SeedResult struct {
	StoresInserted  int             `json:"stores_inserted"`
	ProductsCreated int             `json:"products_created"`
	Run             *models.SeedRun `json:"run"`
}

// Progress is the answer to ProgressQuery.
type Progress struct {
	SeedRunID uuid.UUID `json:"seed_run_id"`
	Stage     string    `json:"stage"`
	Error     string    `json:"error,omitempty"`
}

// Running reports whether the pipeline has not reached a terminal stage.
func (p Progress) Running() bool {
	return p.Stage != StageCompleted && p.Stage != StageFailed
}

var (
	etlActivityOptions = workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2,
			MaximumAttempts:    3,
		},
	}
	// Transaction ids restart at zero for every attempt, so a retry after a
	// partial commit would collide with the rows already written.
	salesActivityOptions = workflow.ActivityOptions{
		StartToCloseTimeout: time.Hour,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	}
)

// SeedWorkflow runs the pipeline for in.RunID. A failing stage fails the
// workflow and the later stages are skipped.
func SeedWorkflow(ctx workflow.Context, in SeedInput) (*SeedResult, error) {
	progress := Progress{SeedRunID: in.RunID, Stage: StageStores}
	if err := workflow.SetQueryHandler(ctx, ProgressQuery, func() (Progress, error) {
		return progress, nil
	}); err != nil {
		return nil, err
	}

	log := workflow.GetLogger(ctx)
	fail := func(err error) (*SeedResult, error) {
		log.Error("seed pipeline failed", "seed_run_id", in.RunID.String(), "stage", progress.Stage, "error", err)
		progress.Error = err.Error()
		progress.Stage = StageFailed
		return nil, err
	}

	var a *Activities
	var res SeedResult

	etlCtx := workflow.WithActivityOptions(ctx, etlActivityOptions)
	if err := workflow.ExecuteActivity(etlCtx, a.SeedStores).Get(ctx, &res.StoresInserted); err != nil {
		return fail(err)
	}

	progress.Stage = StageProducts
	if err := workflow.ExecuteActivity(etlCtx, a.SeedProducts).Get(ctx, &res.ProductsCreated); err != nil {
		return fail(err)
	}

	progress.Stage = StageSales
	salesCtx := workflow.WithActivityOptions(ctx, salesActivityOptions)
	if err := workflow.ExecuteActivity(salesCtx, a.SeedSales, in).Get(ctx, &res.Run); err != nil {
		return fail(err)
	}

	progress.Stage = StageCompleted
	log.Info("seed pipeline finished",
		"seed_run_id", in.RunID.String(),
		"stores_inserted", res.StoresInserted,
		"products_created", res.ProductsCreated,
	)
	return &res, nil
}
