package db

import "context"

const (
	TransactionColumns = 5
	LineItemColumns    = 6
)

const insertTransactionsPrefix = `INSERT INTO sales.sales_transaction (seed_run_id, id, store_id, date, total) VALUES `

func (q *Queries) InsertTransactions(ctx context.Context, rows []SalesTransaction) (int64, error) {
	values := make([][]any, len(rows))
	for i, t := range rows {
		values[i] = []any{t.SeedRunID, t.ID, t.StoreID, t.Date, t.Total}
	}
	return bulkInsert(ctx, q.db, insertTransactionsPrefix, "", TransactionColumns, values)
}

const insertLineItemsPrefix = `INSERT INTO sales.line_item (id, sku, price, quantity, seed_run_id, transaction_id) VALUES `

func (q *Queries) InsertLineItems(ctx context.Context, rows []SalesLineItem) (int64, error) {
	values := make([][]any, len(rows))
	for i, li := range rows {
		values[i] = []any{li.ID, li.Sku, li.Price, li.Quantity, li.SeedRunID, li.TransactionID}
	}
	return bulkInsert(ctx, q.db, insertLineItemsPrefix, "", LineItemColumns, values)
}
