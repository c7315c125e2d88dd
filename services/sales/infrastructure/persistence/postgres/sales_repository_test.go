package postgres

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/ghuser/retailseed/services/sales/domain/models"
	"github.com/ghuser/retailseed/services/sales/infrastructure/persistence/postgres/db"
)

func TestChunks(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		size  int
		sizes []int
	}{
		{"empty", 0, 3, nil},
		{"exact", 6, 3, []int{3, 3}},
		{"remainder", 7, 3, []int{3, 3, 1}},
		{"smaller than size", 2, 1000, []int{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]int, tt.n)
			got := chunks(rows, tt.size)
			if len(got) != len(tt.sizes) {
				t.Fatalf("got %d chunks, want %d", len(got), len(tt.sizes))
			}
			for i, c := range got {
				if len(c) != tt.sizes[i] {
					t.Errorf("chunk %d: len %d, want %d", i, len(c), tt.sizes[i])
				}
			}
		})
	}
}

func TestClampBatch(t *testing.T) {
	limit := db.MaxRowsPerInsert(db.LineItemColumns)
	tests := []struct {
		in, want int
	}{
		{1000, 1000},
		{0, limit},
		{-5, limit},
		{limit + 1, limit},
	}
	for _, tt := range tests {
		if got := clampBatch(tt.in, db.LineItemColumns); got != tt.want {
			t.Errorf("clampBatch(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMapConstraintError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint bool
	}{
		{"unique", &pgconn.PgError{Code: uniqueViolation, ConstraintName: "line_item_pkey"}, true},
		{"foreign key", fmt.Errorf("exec: %w", &pgconn.PgError{Code: foreignKeyViolation}), true},
		{"check", &pgconn.PgError{Code: checkViolation}, true},
		{"syntax", &pgconn.PgError{Code: "42601"}, false},
		{"network", errors.New("connection reset"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapConstraintError("insert line items", tt.err)
			if got := errors.Is(err, ErrConstraintViolation); got != tt.constraint {
				t.Fatalf("errors.Is(ErrConstraintViolation) = %v, want %v (err %v)", got, tt.constraint, err)
			}
			if !strings.HasPrefix(err.Error(), "insert line items: ") {
				t.Fatalf("missing op prefix: %v", err)
			}
		})
	}
}

func TestSeedRunRowRoundTrip(t *testing.T) {
	start := time.Date(2024, 10, 15, 0, 0, 0, 0, time.UTC)
	run := &models.SeedRun{
		ID:               uuid.New(),
		Seed:             ^uint64(0),
		TransactionCount: 10,
		LineItemCount:    47,
		GrossTotal:       decimal.RequireFromString("1234.56"),
		Window:           models.Window{Start: start, End: start.AddDate(1, 0, 0)},
		StartedAt:        start.AddDate(1, 0, 0),
		FinishedAt:       start.AddDate(1, 0, 0).Add(3 * time.Second),
	}

	row := toSeedRunRow(run)
	if row.Seed != "18446744073709551615" {
		t.Fatalf("seed must keep full uint64 range, got %q", row.Seed)
	}
	got, err := fromSeedRunRow(row)
	if err != nil {
		t.Fatalf("fromSeedRunRow: %v", err)
	}
	if got.Seed != run.Seed || !got.GrossTotal.Equal(run.GrossTotal) || !got.Window.Start.Equal(run.Window.Start) || !got.Window.End.Equal(run.Window.End) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, run)
	}

	row.Seed = "not-a-number"
	if _, err := fromSeedRunRow(row); err == nil {
		t.Fatal("expected error for corrupt seed")
	}
}

func TestSeededEventFromRun(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	run := &models.SeedRun{ID: uuid.New(), Seed: 7, TransactionCount: 3, GrossTotal: decimal.RequireFromString("10.5")}

	evt := SeededEventFromRun(run, now)
	if evt.SeedRunID != run.ID || evt.Seed != 7 || evt.TransactionCount != 3 {
		t.Fatalf("unexpected event %+v", evt)
	}
	if evt.GrossTotal != "10.50" {
		t.Fatalf("gross total must be fixed to cents, got %q", evt.GrossTotal)
	}
	if evt.EventID == uuid.Nil || !evt.OccurredAt.Equal(now) {
		t.Fatalf("event id and time must be set: %+v", evt)
	}
}
