package domain

import "github.com/shopspring/decimal"

// ProductSnapshot is the catalog's view of a product at lookup time. Stock is
// returned by the catalog but checkout does not act on it.
type ProductSnapshot struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int32           `json:"stock"`
	ImageURL string          `json:"imageUrl"`
}
