package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one priced, quantified product entry on a transaction.
// Price is copied from the product when the item is generated and is not a
// live reference to the catalog.
type LineItem struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	TransactionID int             `json:"transaction_id"`
}

// Subtotal returns price × quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Transaction is one purchase at a store. Total always equals the sum of the
// subtotals of the line items carrying its id; a transaction may have none.
type Transaction struct {
	ID      int             `json:"id"`
	StoreID string          `json:"store_id"`
	Date    time.Time       `json:"date"`
	Total   decimal.Decimal `json:"total"`
}

// SalesBatch is the output of one generation run.
type SalesBatch struct {
	Transactions []Transaction
	LineItems    []LineItem
}

// GrossTotal sums the totals of every transaction in the batch.
func (b *SalesBatch) GrossTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, t := range b.Transactions {
		sum = sum.Add(t.Total)
	}
	return sum
}
