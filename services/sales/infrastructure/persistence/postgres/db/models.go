package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SalesProduct struct {
	Sku      string
	Name     string
	Price    decimal.Decimal
	Category string
	Unit     string
}

type SalesStore struct {
	ID        string
	Name      string
	State     string
	Latitude  float64
	Longitude float64
}

type SalesTransaction struct {
	SeedRunID uuid.UUID
	ID        int64
	StoreID   string
	Date      time.Time
	Total     decimal.Decimal
}

type SalesLineItem struct {
	ID            string
	Sku           string
	Price         decimal.Decimal
	Quantity      int32
	SeedRunID     uuid.UUID
	TransactionID int64
}

// SalesSeedRun keeps the seed as text: NUMERIC(20,0) holds the full uint64 range.
type SalesSeedRun struct {
	ID               uuid.UUID
	Seed             string
	TransactionCount int64
	LineItemCount    int64
	GrossTotal       decimal.Decimal
	WindowStart      time.Time
	WindowEnd        time.Time
	StartedAt        time.Time
	FinishedAt       time.Time
}
