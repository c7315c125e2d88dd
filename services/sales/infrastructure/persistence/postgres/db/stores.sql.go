package db

import "context"

const StoreColumns = 5

const (
	insertStoresPrefix = `INSERT INTO sales.store (id, name, state, latitude, longitude) VALUES `
	insertStoresSuffix = ` ON CONFLICT (id) DO NOTHING`
)

// InsertStores skips ids that already exist and returns the rows inserted.
func (q *Queries) InsertStores(ctx context.Context, rows []SalesStore) (int64, error) {
	values := make([][]any, len(rows))
	for i, s := range rows {
		values[i] = []any{s.ID, s.Name, s.State, s.Latitude, s.Longitude}
	}
	return bulkInsert(ctx, q.db, insertStoresPrefix, insertStoresSuffix, StoreColumns, values)
}

const listStoreIDs = `SELECT id FROM sales.store ORDER BY id`

func (q *Queries) ListStoreIDs(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listStoreIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
