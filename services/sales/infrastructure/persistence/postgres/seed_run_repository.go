package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/retailseed/pkg/database"
	"github.com/ghuser/retailseed/pkg/events"
	salesdomain "github.com/ghuser/retailseed/services/sales/domain"
	domainevents "github.com/ghuser/retailseed/services/sales/domain/events"
	"github.com/ghuser/retailseed/services/sales/domain/models"
	"github.com/ghuser/retailseed/services/sales/infrastructure/persistence/postgres/db"
)

// SeedRunRepository records run summaries and announces them on the bus.
type SeedRunRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewSeedRunRepository returns a repository that publishes sales.seeded
// through bus. A nil bus records runs without publishing.
func NewSeedRunRepository(database *database.Database, bus *events.EventBus) *SeedRunRepository {
	return &SeedRunRepository{db: database, bus: bus}
}

// RecordRun inserts the summary and publishes SalesSeededEvent in the same
// transaction, so the event exists if and only if the row does.
func (r *SeedRunRepository) RecordRun(ctx context.Context, run *models.SeedRun) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := db.New(tx).InsertSeedRun(ctx, toSeedRunRow(run)); err != nil {
			return mapConstraintError("insert seed run", err)
		}
		if r.bus == nil {
			return nil
		}
		if err := r.publishSeeded(ctx, tx, run); err != nil {
			return fmt.Errorf("publish sales seeded: %w", err)
		}
		return nil
	})
}

func (r *SeedRunRepository) GetRun(ctx context.Context, id uuid.UUID) (*models.SeedRun, error) {
	row, err := db.New(r.db.DB()).GetSeedRun(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, salesdomain.ErrSeedRunNotFound
		}
		return nil, fmt.Errorf("query seed run: %w", err)
	}
	return fromSeedRunRow(row)
}

func (r *SeedRunRepository) publishSeeded(ctx context.Context, tx *sql.Tx, run *models.SeedRun) error {
	payload, err := json.Marshal(SeededEventFromRun(run, time.Now().UTC()))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_version", strconv.Itoa(domainevents.SalesSeededVersion))
	msg.Metadata.Set("seed_run_id", run.ID.String())
	events.InjectTrace(ctx, msg)

	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return err
	}
	return p.Publish(domainevents.TopicSalesSeeded, msg)
}

// SeededEventFromRun builds the event announcing run.
func SeededEventFromRun(run *models.SeedRun, now time.Time) domainevents.SalesSeededEvent {
	return domainevents.SalesSeededEvent{
		EventID:          uuid.New(),
		Version:          domainevents.SalesSeededVersion,
		SeedRunID:        run.ID,
		Seed:             run.Seed,
		TransactionCount: run.TransactionCount,
		LineItemCount:    run.LineItemCount,
		GrossTotal:       run.GrossTotal.StringFixed(2),
		WindowStart:      run.Window.Start,
		WindowEnd:        run.Window.End,
		StartedAt:        run.StartedAt,
		FinishedAt:       run.FinishedAt,
		OccurredAt:       now,
	}
}

func toSeedRunRow(run *models.SeedRun) db.SalesSeedRun {
	return db.SalesSeedRun{
		ID:               run.ID,
		Seed:             strconv.FormatUint(run.Seed, 10),
		TransactionCount: int64(run.TransactionCount),
		LineItemCount:    int64(run.LineItemCount),
		GrossTotal:       run.GrossTotal,
		WindowStart:      run.Window.Start,
		WindowEnd:        run.Window.End,
		StartedAt:        run.StartedAt,
		FinishedAt:       run.FinishedAt,
	}
}

func fromSeedRunRow(row db.SalesSeedRun) (*models.SeedRun, error) {
	seed, err := strconv.ParseUint(row.Seed, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse seed %q: %w", row.Seed, err)
	}
	return &models.SeedRun{
		ID:               row.ID,
		Seed:             seed,
		TransactionCount: int(row.TransactionCount),
		LineItemCount:    int(row.LineItemCount),
		GrossTotal:       row.GrossTotal,
		Window:           models.Window{Start: row.WindowStart.UTC(), End: row.WindowEnd.UTC()},
		StartedAt:        row.StartedAt.UTC(),
		FinishedAt:       row.FinishedAt.UTC(),
	}, nil
}
