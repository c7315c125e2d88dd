package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/ghuser/retailseed/pkg/config"
)

const sentryFlushTimeout = 2 * time.Second

// SetupSentry initializes the Sentry SDK. It is a no-op without a DSN.
func SetupSentry(cfg *config.Config) error {
	if cfg.SentryDSN == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          cfg.ServiceName + "@" + cfg.ServiceVersion,
		TracesSampleRate: 0.2,
	}); err != nil {
		return fmt.Errorf("telemetry: sentry init: %w", err)
	}
	return nil
}

func SentryFlush() {
	sentry.Flush(sentryFlushTimeout)
}

// CaptureError reports err to Sentry, tagged with the seed run when one is
// known. Safe to call when Sentry is not initialized.
func CaptureError(ctx context.Context, err error, seedRunID string) {
	if err == nil {
		return
	}
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		if seedRunID != "" {
			scope.SetTag("seed_run_id", seedRunID)
		}
		hub.CaptureException(err)
	})
}

// SentryMiddleware captures panics and re-panics so the outer recovery
// middleware still writes the 500.
func SentryMiddleware() func(http.Handler) http.Handler {
	h := sentryhttp.New(sentryhttp.Options{Repanic: true})
	return h.Handle
}
