package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/retailseed/pkg/app"
	"github.com/ghuser/retailseed/pkg/auth"
	"github.com/ghuser/retailseed/pkg/config"
	"github.com/ghuser/retailseed/services/sales/application/handlers"
	appsvcs "github.com/ghuser/retailseed/services/sales/application/services"
	"github.com/ghuser/retailseed/services/sales/application/workflows"
)

// SalesRoutes registers session and seed-run endpoints on r.
func SalesRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	production := a.Config.Environment == config.EnvProduction

	var starter handlers.WorkflowStarter
	if a.Temporal != nil {
		starter = workflows.NewStarter(a.Temporal.Client, a.Temporal.TaskQueue)
	}

	sessionsH := handlers.NewSessionHandler(a.SessionStore, a.Config.AdminToken, a.Logger)
	runsH := handlers.NewSeedRunHandler(svcs.Runs, starter, handlers.Defaults{
		TransactionCount: a.Config.TransactionCount,
		Window:           a.Config.SalesWindow,
		Seed:             a.Config.Seed,
	}, production, a.Logger)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", sessionsH.Create)
		r.Delete("/", sessionsH.Delete)
	})
	r.Route("/seed-runs", func(r chi.Router) {
		r.With(auth.RequireOperator(a.SessionStore, a.Logger)).Post("/", runsH.Start)
		r.Get("/{id}", runsH.Get)
	})
}
