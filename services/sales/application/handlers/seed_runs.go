package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/retailseed/pkg/auth"
	"github.com/ghuser/retailseed/pkg/errhttp"
	"github.com/ghuser/retailseed/pkg/httpx"
	"github.com/ghuser/retailseed/pkg/logger"
	pkgvalidator "github.com/ghuser/retailseed/pkg/validator"
	"github.com/ghuser/retailseed/services/sales/application/workflows"
	salesdomain "github.com/ghuser/retailseed/services/sales/domain"
	"github.com/ghuser/retailseed/services/sales/domain/models"
)

// Seed run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// RunReader reads finished seed runs.
type RunReader interface {
	Get(ctx context.Context, id uuid.UUID) (*models.SeedRun, error)
}

// WorkflowStarter starts the seed workflow and reports on the latest one.
type WorkflowStarter interface {
	Start(ctx context.Context, in workflows.SeedInput) (*workflows.Started, error)
	Progress(ctx context.Context) (*workflows.Progress, error)
}

// Defaults fill the fields a StartSeedRunRequest leaves out.
type Defaults struct {
	TransactionCount int
	Window           time.Duration
	Seed             uint64
}

// MaxTransactionCount caps transaction_count. A run is synthesized in memory
// and its line items land in one database transaction, at roughly eleven line
// items per transaction with the default catalog.
const MaxTransactionCount = 100000

// StartSeedRunRequest is the request body for POST /api/seed-runs. Every
// field is optional.
type StartSeedRunRequest struct {
	TransactionCount *int    `json:"transaction_count" validate:"omitnil,gte=0,lte=100000"`
	WindowDays       *int    `json:"window_days"       validate:"omitnil,gte=1,lte=3650"`
	Seed             *uint64 `json:"seed"`
}

type StartSeedRunResponse struct {
	SeedRunID     uuid.UUID `json:"seed_run_id"`
	WorkflowID    string    `json:"workflow_id"`
	WorkflowRunID string    `json:"workflow_run_id"`
	Status        string    `json:"status"`
}

// SeedRunResponse describes a run. Summary fields are present once the run
// has completed; Stage and Error only while it is running or after it failed.
type SeedRunResponse struct {
	ID               uuid.UUID  `json:"id"`
	Status           string     `json:"status"`
	Stage            string     `json:"stage,omitempty"`
	Error            string     `json:"error,omitempty"`
	Seed             *uint64    `json:"seed,omitempty"`
	TransactionCount *int       `json:"transaction_count,omitempty"`
	LineItemCount    *int       `json:"line_item_count,omitempty"`
	GrossTotal       string     `json:"gross_total,omitempty"`
	WindowStart      *time.Time `json:"window_start,omitempty"`
	WindowEnd        *time.Time `json:"window_end,omitempty"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
	FinishedAt       *time.Time `json:"finished_at,omitempty"`
}

func runResponse(run *models.SeedRun) SeedRunResponse {
	return SeedRunResponse{
		ID:               run.ID,
		Status:           StatusCompleted,
		Seed:             &run.Seed,
		TransactionCount: &run.TransactionCount,
		LineItemCount:    &run.LineItemCount,
		GrossTotal:       run.GrossTotal.StringFixed(2),
		WindowStart:      &run.Window.Start,
		WindowEnd:        &run.Window.End,
		StartedAt:        &run.StartedAt,
		FinishedAt:       &run.FinishedAt,
	}
}

// SeedRunHandler serves /api/seed-runs.
type SeedRunHandler struct {
	runs       RunReader
	starter    WorkflowStarter
	defaults   Defaults
	production bool
	log        logger.Logger
	now        func() time.Time
}

// NewSeedRunHandler accepts a nil starter; starting runs then answers 503.
func NewSeedRunHandler(runs RunReader, starter WorkflowStarter, defaults Defaults, production bool, log logger.Logger) *SeedRunHandler {
	return &SeedRunHandler{
		runs:       runs,
		starter:    starter,
		defaults:   defaults,
		production: production,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Start handles POST /api/seed-runs. The pipeline runs on the worker; the
// response points at the run resource to poll.
func (h *SeedRunHandler) Start(w http.ResponseWriter, r *http.Request) {
	if h.starter == nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "workflow engine not configured")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[StartSeedRunRequest](w, r)
	if !ok {
		return
	}

	in := h.seedInput(req)
	ctx := logger.WithSeedRunID(r.Context(), in.RunID.String())

	started, err := h.starter.Start(ctx, in)
	if err != nil {
		if !errors.Is(err, salesdomain.ErrSeedRunInProgress) {
			h.log.ErrorContext(ctx, "start seed workflow", "error", err)
		}
		errhttp.WriteError(w, err, h.production)
		return
	}

	operator, _ := auth.OperatorFromCtx(ctx)
	h.log.InfoContext(ctx, "seed run started",
		"operator", operator,
		"workflow_run_id", started.RunID,
		"transaction_count", in.Count,
	)
	httpx.Accepted(w, "/api/seed-runs/"+in.RunID.String(), StartSeedRunResponse{
		SeedRunID:     in.RunID,
		WorkflowID:    started.WorkflowID,
		WorkflowRunID: started.RunID,
		Status:        StatusRunning,
	})
}

func (h *SeedRunHandler) seedInput(req *StartSeedRunRequest) workflows.SeedInput {
	count := h.defaults.TransactionCount
	if req.TransactionCount != nil {
		count = *req.TransactionCount
	}
	span := h.defaults.Window
	if req.WindowDays != nil {
		span = time.Duration(*req.WindowDays) * 24 * time.Hour
	}
	seed := h.defaults.Seed
	if req.Seed != nil {
		seed = *req.Seed
	}

	window := models.TrailingWindow(h.now(), span)
	return workflows.SeedInput{
		RunID:       uuid.New(),
		Count:       count,
		WindowStart: window.Start,
		WindowEnd:   window.End,
		Seed:        seed,
	}
}

// Get handles GET /api/seed-runs/{id}. A run that has not finished is looked
// up on the workflow engine.
func (h *SeedRunHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid seed run id")
		return
	}

	run, err := h.runs.Get(r.Context(), id)
	if err == nil {
		httpx.JSON(w, http.StatusOK, runResponse(run))
		return
	}
	if !errors.Is(err, salesdomain.ErrSeedRunNotFound) || h.starter == nil {
		errhttp.WriteError(w, err, h.production)
		return
	}

	p, perr := h.starter.Progress(r.Context())
	if perr != nil {
		h.log.WarnContext(r.Context(), "query seed workflow progress", "seed_run_id", id, "error", perr)
	}
	if p == nil || p.SeedRunID != id || p.Stage == workflows.StageCompleted {
		errhttp.WriteError(w, err, h.production)
		return
	}

	resp := SeedRunResponse{ID: id, Status: StatusRunning, Stage: p.Stage}
	if p.Stage == workflows.StageFailed {
		resp.Status = StatusFailed
		resp.Error = p.Error
		if h.production {
			resp.Error = "seed pipeline failed"
		}
	}
	httpx.JSON(w, http.StatusOK, resp)
}
