package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeedRun summarizes one sales generation run once it has been persisted.
type SeedRun struct {
	ID               uuid.UUID       `json:"id"`
	Seed             uint64          `json:"seed"`
	TransactionCount int             `json:"transaction_count"`
	LineItemCount    int             `json:"line_item_count"`
	GrossTotal       decimal.Decimal `json:"gross_total"`
	Window           Window          `json:"window"`
	StartedAt        time.Time       `json:"started_at"`
	FinishedAt       time.Time       `json:"finished_at"`
}
