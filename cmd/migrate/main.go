// Command migrate applies the sales schema migrations.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ghuser/retailseed/migrations/sales"
	"github.com/ghuser/retailseed/pkg/config"
	"github.com/ghuser/retailseed/pkg/logger"
	"github.com/ghuser/retailseed/pkg/migrator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

	version, err := migrator.Up(context.Background(), cfg.DatabaseURL, sales.FS)
	if err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied", "schema", "sales", "version", version)
}
