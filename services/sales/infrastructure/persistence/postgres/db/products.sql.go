package db

import "context"

const ProductColumns = 5

const insertProductsPrefix = `INSERT INTO sales.product (sku, name, price, category, unit) VALUES `

// InsertProducts inserts every row in one statement.
func (q *Queries) InsertProducts(ctx context.Context, rows []SalesProduct) (int64, error) {
	values := make([][]any, len(rows))
	for i, p := range rows {
		values[i] = []any{p.Sku, p.Name, p.Price, p.Category, p.Unit}
	}
	return bulkInsert(ctx, q.db, insertProductsPrefix, "", ProductColumns, values)
}

const listProducts = `SELECT sku, name, price, category, unit FROM sales.product ORDER BY sku`

func (q *Queries) ListProducts(ctx context.Context) ([]SalesProduct, error) {
	rows, err := q.db.QueryContext(ctx, listProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var items []SalesProduct
	for rows.Next() {
		var p SalesProduct
		if err := rows.Scan(&p.Sku, &p.Name, &p.Price, &p.Category, &p.Unit); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const countProducts = `SELECT count(*) FROM sales.product`

func (q *Queries) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countProducts).Scan(&n)
	return n, err
}
