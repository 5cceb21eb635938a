package domain

import "github.com/shopspring/decimal"

// Pizza is one orderable catalog item. Rows are seeded at provisioning time and
// read-only at runtime; price changes never propagate into existing orders.
type Pizza struct {
	ID          int64
	Name        string
	Ingredients string
	Price       decimal.Decimal
	Image       string
}
