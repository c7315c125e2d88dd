// Command seed loads stores, seeds the catalog and generates sales in one
// process, without Temporal or Redis.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/retailseed/migrations/sales"
	"github.com/ghuser/retailseed/pkg/app"
	"github.com/ghuser/retailseed/pkg/config"
	"github.com/ghuser/retailseed/pkg/database"
	"github.com/ghuser/retailseed/pkg/events"
	"github.com/ghuser/retailseed/pkg/logger"
	"github.com/ghuser/retailseed/pkg/migrator"
	"github.com/ghuser/retailseed/pkg/telemetry"
	appsvcs "github.com/ghuser/retailseed/services/sales/application/services"
	"github.com/ghuser/retailseed/services/sales/domain/models"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	if err := config.ValidateGeneration(cfg); err != nil {
		slog.Error("generation config validation failed", "error", err)
		return 1
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		return 1
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	if cfg.MigrateOnStart {
		version, err := migrator.Up(ctx, cfg.DatabaseURL, sales.FS)
		if err != nil {
			log.Error("failed to apply migrations", "error", err)
			return 1
		}
		log.Info("migrations applied", "version", version)
	}

	db, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		return 1
	}
	defer db.Close()

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		return 1
	}
	defer eventBus.Close() //nolint:errcheck

	svcs := appsvcs.New(&app.Application{
		Config:   cfg,
		Db:       db,
		Logger:   log,
		EventBus: eventBus,
	})

	runID := uuid.New()
	start := time.Now()
	res, err := svcs.Pipeline.Run(ctx, appsvcs.SeedParams{
		RunID:  runID,
		Count:  cfg.TransactionCount,
		Window: models.TrailingWindow(time.Now().UTC(), cfg.SalesWindow),
		Seed:   cfg.Seed,
	})
	if err != nil {
		log.ErrorContext(logger.WithSeedRunID(ctx, runID.String()), "seed pipeline failed", "error", err)
		telemetry.CaptureError(ctx, err, runID.String())
		return 1
	}

	log.InfoContext(logger.WithSeedRunID(ctx, runID.String()), "seed complete",
		"stores_inserted", res.StoresInserted,
		"products_created", res.ProductsCreated,
		"transactions", res.Run.TransactionCount,
		"line_items", res.Run.LineItemCount,
		"seed", res.Run.Seed,
		"elapsed", time.Since(start).String(),
	)
	return 0
}
