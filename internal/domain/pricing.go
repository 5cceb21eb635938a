package domain

import "github.com/shopspring/decimal"

// PricedLine pairs an order line with its resolved unit price.
type PricedLine struct {
	PizzaID   int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// RoundLine computes quantity * unitPrice rounded half-up to two fraction
// digits. Rounding per line before summation is the binding policy: totals are
// reproducible and depend on submission order only in rounding edge cases.
func RoundLine(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// PriceLines computes per-line and total amounts from resolved lines. Pure and
// deterministic; summation follows the insertion order of the submitted lines.
func PriceLines(lines []PricedLine) (total decimal.Decimal, perLine []decimal.Decimal) {
	perLine = make([]decimal.Decimal, 0, len(lines))
	total = decimal.Zero
	for _, line := range lines {
		amount := RoundLine(line.UnitPrice, line.Quantity)
		perLine = append(perLine, amount)
		total = total.Add(amount)
	}
	return total, perLine
}
