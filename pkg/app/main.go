// Package app carries the shared infrastructure handed to every bounded
// context when a binary wires its routes, activities or subscribers.
package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/retailseed/pkg/cache"
	"github.com/ghuser/retailseed/pkg/config"
	"github.com/ghuser/retailseed/pkg/database"
	"github.com/ghuser/retailseed/pkg/events"
	"github.com/ghuser/retailseed/pkg/logger"
	"github.com/ghuser/retailseed/pkg/workflows"
)

// Application holds the process-wide dependencies. Fields a binary does not
// need stay nil: the seed CLI has no Redis or Temporal, the worker has no
// session store.
//
// Logger is trace-aware; prefer the *Context methods inside requests and
// activities so trace_id and seed_run_id are attached:
//
//	a.Logger.InfoContext(ctx, "stores loaded", "inserted", n)
type Application struct {
	Config       *config.Config
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient
	Temporal     *workflows.TemporalClient
	SessionStore sessions.Store
}
