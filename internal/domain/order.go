package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	MaxCustomerNameLength = 100
	MaxOrderLines         = 20
	MaxLineQuantity       = 50
)

// phonePattern accepts international dial format: optional +, optional leading 1,
// then 9-15 digits. Bounds are consistent with the phone_number column width.
var phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)

// OrderLine is the request-time (item, quantity) pairing, before catalog resolution.
type OrderLine struct {
	PizzaID  int64
	Quantity int
}

// OrderItem is a persisted order line. UnitPrice is captured at order time so
// later catalog price changes never retroactively alter historical totals.
type OrderItem struct {
	ID        int64
	OrderID   int64
	PizzaID   int64
	PizzaName string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Total is the line amount rounded per the binding pricing policy.
func (i OrderItem) Total() decimal.Decimal {
	return RoundLine(i.UnitPrice, i.Quantity)
}

// Order is a persisted customer order. Created atomically with its items and
// immutable afterward.
type Order struct {
	ID           int64
	CustomerName string
	PhoneNumber  string
	TotalPrice   decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Items        []OrderItem
}

// ValidateOrderInput enforces the structural constraints on an order submission.
// Every failing field is reported so the caller can fix the whole submission in
// one round trip. It has no side effects and does not touch the catalog.
func ValidateOrderInput(customerName, phoneNumber string, lines []OrderLine) error {
	var errs ValidationErrors

	name := strings.TrimSpace(customerName)
	if name == "" {
		errs = append(errs, &ValidationError{Field: "customer_name", Reason: "is required"})
	} else if utf8.RuneCountInString(name) > MaxCustomerNameLength {
		errs = append(errs, &ValidationError{Field: "customer_name", Reason: fmt.Sprintf("must be at most %d characters", MaxCustomerNameLength)})
	}

	phone := strings.TrimSpace(phoneNumber)
	if phone == "" {
		errs = append(errs, &ValidationError{Field: "phone_number", Reason: "is required"})
	} else if !phonePattern.MatchString(phone) {
		errs = append(errs, &ValidationError{Field: "phone_number", Reason: "must be in international format (e.g. +1234567890)"})
	}

	switch {
	case len(lines) == 0:
		errs = append(errs, &ValidationError{Field: "items", Reason: "at least one item is required"})
	case len(lines) > MaxOrderLines:
		errs = append(errs, &ValidationError{Field: "items", Reason: fmt.Sprintf("must have at most %d items", MaxOrderLines)})
	default:
		for idx, line := range lines {
			if line.PizzaID <= 0 {
				errs = append(errs, &ValidationError{Field: fmt.Sprintf("items[%d].pizza_id", idx), Reason: "must be a positive identifier"})
			}
			if line.Quantity < 1 || line.Quantity > MaxLineQuantity {
				errs = append(errs, &ValidationError{Field: fmt.Sprintf("items[%d].quantity", idx), Reason: fmt.Sprintf("must be between 1 and %d", MaxLineQuantity)})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CheckOrderCeiling enforces the configured maximum permitted order total.
// It runs after pricing and fails as a business-rule violation, distinct from
// structural validation.
func CheckOrderCeiling(total, ceiling decimal.Decimal) error {
	if total.GreaterThan(ceiling) {
		return &BusinessRuleError{Rule: "order total ceiling", Limit: ceiling, Actual: total}
	}
	return nil
}
