package db

import (
	"context"

	"github.com/google/uuid"
)

const insertSeedRun = `INSERT INTO sales.seed_run (
    id, seed, transaction_count, line_item_count, gross_total,
    window_start, window_end, started_at, finished_at
) VALUES ($1, $2::numeric, $3, $4, $5, $6, $7, $8, $9)`

func (q *Queries) InsertSeedRun(ctx context.Context, r SalesSeedRun) error {
	_, err := q.db.ExecContext(ctx, insertSeedRun,
		r.ID, r.Seed, r.TransactionCount, r.LineItemCount, r.GrossTotal,
		r.WindowStart, r.WindowEnd, r.StartedAt, r.FinishedAt,
	)
	return err
}

const getSeedRun = `SELECT id, seed::text, transaction_count, line_item_count, gross_total,
    window_start, window_end, started_at, finished_at
FROM sales.seed_run WHERE id = $1`

func (q *Queries) GetSeedRun(ctx context.Context, id uuid.UUID) (SalesSeedRun, error) {
	var r SalesSeedRun
	err := q.db.QueryRowContext(ctx, getSeedRun, id).Scan(
		&r.ID, &r.Seed, &r.TransactionCount, &r.LineItemCount, &r.GrossTotal,
		&r.WindowStart, &r.WindowEnd, &r.StartedAt, &r.FinishedAt,
	)
	return r, err
}
