package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicSalesSeeded is the Watermill topic published when a seed run commits.
const TopicSalesSeeded = "sales.seeded"

// SalesSeededVersion is the current payload version.
const SalesSeededVersion = 1

// SalesSeededEvent is published in the same transaction that records a seed run.
type SalesSeededEvent struct {
	EventID          uuid.UUID `json:"event_id"` // deduplication key for consumers
	Version          int       `json:"version"`
	SeedRunID        uuid.UUID `json:"seed_run_id"`
	Seed             uint64    `json:"seed"`
	TransactionCount int       `json:"transaction_count"`
	LineItemCount    int       `json:"line_item_count"`
	GrossTotal       string    `json:"gross_total"`
	WindowStart      time.Time `json:"window_start"`
	WindowEnd        time.Time `json:"window_end"`
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
	OccurredAt       time.Time `json:"occurred_at"`
}
