package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	// Keeping this sentinel in domain allows adapters to map it consistently to 404/NOT_FOUND.
	ErrNotFound = errors.New("resource not found")
	// ErrRateLimited signals the caller exceeded the chat request budget.
	// It is a throttling outcome, not a correctness failure, and maps to 429.
	ErrRateLimited = errors.New("rate limited")
	// ErrPersistence wraps storage failures. It is the only retryable error kind;
	// adapters surface it generically without internal detail.
	ErrPersistence = errors.New("persistence failure")
	// ErrModelUnavailable is internal to the response strategy. It is always
	// absorbed into the rule-based fallback and never reaches the chat caller.
	ErrModelUnavailable = errors.New("model unavailable")
	ErrInvalidInput     = errors.New("invalid input")
)

// ValidationError carries field-level detail for a structural input failure.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ValidationErrors collects every structural failure in a submission so the
// caller can correct all fields in one round trip.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, v := range e {
		parts = append(parts, v.Error())
	}
	return strings.Join(parts, "; ")
}

func (e ValidationErrors) Is(target error) bool {
	return target == ErrInvalidInput
}

// BusinessRuleError reports a semantic rule violation, distinct from structural
// validation. The order-total ceiling is the only rule in this service today.
type BusinessRuleError struct {
	Rule   string
	Limit  decimal.Decimal
	Actual decimal.Decimal
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("%s: limit %s exceeded (actual %s)", e.Rule, e.Limit.StringFixed(2), e.Actual.StringFixed(2))
}
