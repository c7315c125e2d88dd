package httpx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/retailseed/pkg/httpx"
)

func TestJSON_setsHeadersAndBody(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSON(w, http.StatusCreated, map[string]string{"id": "abc"})

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("unexpected Content-Type: %q", ct)
	}
	if xct := w.Header().Get("X-Content-Type-Options"); xct != "nosniff" {
		t.Errorf("expected nosniff, got %q", xct)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["id"] != "abc" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSONError(w, http.StatusBadRequest, "something went wrong")

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if w.Code != http.StatusBadRequest || body["error"] != "something went wrong" {
		t.Errorf("unexpected response %d %v", w.Code, body)
	}
}

func TestAccepted(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.Accepted(w, "/api/seed-runs/42", map[string]string{"seed_run_id": "42"})

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/api/seed-runs/42" {
		t.Errorf("Location = %q", loc)
	}
}

func TestSafeError(t *testing.T) {
	err := errors.New("dial tcp 10.0.0.3:5432: refused")
	tests := []struct {
		status     int
		production bool
		want       string
	}{
		{http.StatusInternalServerError, true, "Internal Server Error"},
		{http.StatusBadGateway, true, "Bad Gateway"},
		{http.StatusInternalServerError, false, err.Error()},
		{http.StatusNotFound, true, err.Error()},
	}
	for _, tt := range tests {
		if got := httpx.SafeError(err, tt.status, tt.production); got != tt.want {
			t.Errorf("SafeError(%d, %v) = %q, want %q", tt.status, tt.production, got, tt.want)
		}
	}
}
