package httpx

import (
	"context"
	"net/http"
	"sort"
	"time"
)

const healthTimeout = 2 * time.Second

// HealthChecker is anything that can be pinged: the database, Redis, the
// event bus, the Temporal client.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to HealthChecker.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type healthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// HealthHandler pings every named dependency concurrently. It answers 200 when
// all succeed and 503 with the failing components marked otherwise.
func HealthHandler(checks map[string]HealthChecker) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		results := make([]error, len(names))
		done := make(chan struct{}, len(names))
		for i, name := range names {
			go func() {
				results[i] = checks[name].Ping(ctx)
				done <- struct{}{}
			}()
		}
		for range names {
			<-done
		}

		resp := healthResponse{Status: "ok", Components: make(map[string]string, len(names))}
		for i, name := range names {
			if results[i] != nil {
				resp.Status = "degraded"
				resp.Components[name] = "unreachable"
				continue
			}
			resp.Components[name] = "ok"
		}

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}
