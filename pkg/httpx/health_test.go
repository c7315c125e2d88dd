package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/retailseed/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

type healthBody struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

func serveHealth(t *testing.T, checks map[string]httpx.HealthChecker) (int, healthBody, string) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.HealthHandler(checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	var body healthBody
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr.Code, body, rr.Header().Get("Content-Type")
}

func TestHealthHandler(t *testing.T) {
	down := errors.New("conn refused")
	tests := []struct {
		name       string
		checks     map[string]httpx.HealthChecker
		wantStatus int
		wantBody   healthBody
	}{
		{
			name: "all healthy",
			checks: map[string]httpx.HealthChecker{
				"database": &stubChecker{},
				"redis":    &stubChecker{},
				"temporal": httpx.PingFunc(func(context.Context) error { return nil }),
			},
			wantStatus: http.StatusOK,
			wantBody: healthBody{Status: "ok", Components: map[string]string{
				"database": "ok", "redis": "ok", "temporal": "ok",
			}},
		},
		{
			name: "database down",
			checks: map[string]httpx.HealthChecker{
				"database": &stubChecker{err: down},
				"redis":    &stubChecker{},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody: healthBody{Status: "degraded", Components: map[string]string{
				"database": "unreachable", "redis": "ok",
			}},
		},
		{
			name: "everything down",
			checks: map[string]httpx.HealthChecker{
				"database":  &stubChecker{err: down},
				"event_bus": &stubChecker{err: down},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody: healthBody{Status: "degraded", Components: map[string]string{
				"database": "unreachable", "event_bus": "unreachable",
			}},
		},
		{
			name:       "no dependencies",
			checks:     map[string]httpx.HealthChecker{},
			wantStatus: http.StatusOK,
			wantBody:   healthBody{Status: "ok", Components: map[string]string{}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body, ct := serveHealth(t, tt.checks)
			if code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, code)
			}
			if ct != "application/json; charset=utf-8" {
				t.Errorf("Content-Type: got %q", ct)
			}
			if body.Status != tt.wantBody.Status || len(body.Components) != len(tt.wantBody.Components) {
				t.Fatalf("got %+v, want %+v", body, tt.wantBody)
			}
			for k, v := range tt.wantBody.Components {
				if body.Components[k] != v {
					t.Errorf("%s: got %q, want %q", k, body.Components[k], v)
				}
			}
		})
	}
}
