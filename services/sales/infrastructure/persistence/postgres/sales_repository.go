package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/retailseed/pkg/database"
	"github.com/ghuser/retailseed/services/sales/domain/models"
	"github.com/ghuser/retailseed/services/sales/infrastructure/persistence/postgres/db"
)

// SQLSTATE codes mapped to domain errors.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// ErrConstraintViolation is wrapped around unique, foreign key and check
// violations so callers can tell bad data from a broken connection.
var ErrConstraintViolation = errors.New("constraint violation")

// SalesRepository writes generated batches. Each Save call commits its whole
// batch in one transaction, split into multi-row INSERTs of batchSize rows.
type SalesRepository struct {
	db        *database.Database
	batchSize int
}

func NewSalesRepository(database *database.Database, batchSize int) *SalesRepository {
	return &SalesRepository{db: database, batchSize: batchSize}
}

func (r *SalesRepository) SaveTransactions(ctx context.Context, runID uuid.UUID, txs []models.Transaction) error {
	rows := make([]db.SalesTransaction, len(txs))
	for i, t := range txs {
		rows[i] = db.SalesTransaction{
			SeedRunID: runID,
			ID:        int64(t.ID),
			StoreID:   t.StoreID,
			Date:      t.Date,
			Total:     t.Total,
		}
	}
	size := clampBatch(r.batchSize, db.TransactionColumns)
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		for _, chunk := range chunks(rows, size) {
			if _, err := q.InsertTransactions(ctx, chunk); err != nil {
				return mapConstraintError("insert transactions", err)
			}
		}
		return nil
	})
}

func (r *SalesRepository) SaveLineItems(ctx context.Context, runID uuid.UUID, items []models.LineItem) error {
	rows := make([]db.SalesLineItem, len(items))
	for i, li := range items {
		rows[i] = db.SalesLineItem{
			ID:            li.ID,
			Sku:           li.SKU,
			Price:         li.Price,
			Quantity:      int32(li.Quantity),
			SeedRunID:     runID,
			TransactionID: int64(li.TransactionID),
		}
	}
	size := clampBatch(r.batchSize, db.LineItemColumns)
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		for _, chunk := range chunks(rows, size) {
			if _, err := q.InsertLineItems(ctx, chunk); err != nil {
				return mapConstraintError("insert line items", err)
			}
		}
		return nil
	})
}

func clampBatch(size, cols int) int {
	if limit := db.MaxRowsPerInsert(cols); size <= 0 || size > limit {
		return limit
	}
	return size
}

func chunks[T any](rows []T, size int) [][]T {
	out := make([][]T, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		out = append(out, rows[start:min(start+size, len(rows))])
	}
	return out
}

func mapConstraintError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation, foreignKeyViolation, checkViolation:
			return fmt.Errorf("%s: %w: %s (%s)", op, ErrConstraintViolation, pgErr.Message, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
