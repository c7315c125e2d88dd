package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"golang.org/x/sync/errgroup"

	"github.com/ghuser/retailseed/pkg/app"
	"github.com/ghuser/retailseed/pkg/cache"
	"github.com/ghuser/retailseed/pkg/config"
	"github.com/ghuser/retailseed/pkg/database"
	"github.com/ghuser/retailseed/pkg/events"
	"github.com/ghuser/retailseed/pkg/logger"
	"github.com/ghuser/retailseed/pkg/telemetry"
	"github.com/ghuser/retailseed/pkg/workflows"
	appsvcs "github.com/ghuser/retailseed/services/sales/application/services"
	salesworkflows "github.com/ghuser/retailseed/services/sales/application/workflows"
	salesEvents "github.com/ghuser/retailseed/services/sales/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}
	if err := config.ValidateGeneration(cfg); err != nil {
		slog.Error("generation config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	db, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer db.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	temporalClient, err := workflows.NewTemporalClient(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize temporal client", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer temporalClient.Close()

	appConfig := &app.Application{
		Config:   cfg,
		Db:       db,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		Temporal: temporalClient,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return runTemporalWorker(gctx, appConfig) })
	g.Go(func() error { return consumeSalesSeeded(gctx, appConfig) })

	if err := g.Wait(); err != nil {
		log.Error("worker failed", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// runTemporalWorker polls the seeder task queue until ctx is done.
func runTemporalWorker(ctx context.Context, a *app.Application) error {
	w := a.Temporal.NewWorker()
	w.RegisterWorkflow(salesworkflows.SeedWorkflow)
	w.RegisterActivity(salesworkflows.NewActivities(appsvcs.New(a)))

	if err := w.Start(); err != nil {
		return fmt.Errorf("start temporal worker: %w", err)
	}
	a.Logger.Info("temporal worker started", "task_queue", a.Temporal.TaskQueue)

	<-ctx.Done()
	w.Stop()
	return nil
}

// consumeSalesSeeded subscribes the cache warmer and drains its error
// channel until the subscription ends.
func consumeSalesSeeded(ctx context.Context, a *app.Application) error {
	errCh, err := a.EventBus.Subscribe(ctx, salesEvents.TopicSalesSeeded, handleSalesSeeded(a))
	if err != nil {
		return err
	}
	a.Logger.Info("event subscribers registered", "topics", []string{salesEvents.TopicSalesSeeded})

	for err := range errCh {
		a.Logger.ErrorContext(ctx, "subscriber error",
			"topic", salesEvents.TopicSalesSeeded,
			"error", err,
		)
		telemetry.CaptureError(ctx, err, "")
	}
	return nil
}

// handleSalesSeeded warms the run summary cache so GET /api/seed-runs/{id}
// is served from Redis. Warming is best-effort: a Redis failure is logged
// and the message is still acked.
func handleSalesSeeded(a *app.Application) events.Handler {
	runCache := cache.NewRunSummaryCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt salesEvents.SalesSeededEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return fmt.Errorf("decode %s: %w", salesEvents.TopicSalesSeeded, err)
		}
		if evt.Version > salesEvents.SalesSeededVersion {
			a.Logger.WarnContext(ctx, "unknown sales.seeded version, skipping",
				"version", evt.Version, "event_id", evt.EventID)
			return nil
		}

		ctx = logger.WithSeedRunID(ctx, evt.SeedRunID.String())
		if err := runCache.Set(ctx, appsvcs.SummaryFromEvent(&evt)); err != nil {
			a.Logger.WarnContext(ctx, "cache warm failed for sales.seeded", "error", err)
			return nil
		}
		a.Logger.InfoContext(ctx, "cache warmed", "transactions", evt.TransactionCount)
		return nil
	}
}
