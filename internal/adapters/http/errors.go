package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/noorulain276775/pizza-delivery-app/internal/domain"
)

// mapDomainError centralizes the error taxonomy -> status translation.
// Validation and business-rule failures surface verbatim with field detail;
// persistence failures are surfaced generically and logged with full detail.
func mapDomainError(err error) (int, string, string) {
	var ruleErr *domain.BusinessRuleError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "VALIDATION_ERROR", err.Error()
	case errors.As(err, &ruleErr):
		return http.StatusUnprocessableEntity, "BUSINESS_RULE_VIOLATION", ruleErr.Error()
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "RATE_LIMITED", "too many requests"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
	}
}

func writeMappedError(ctx context.Context, w http.ResponseWriter, operation string, err error) {
	status, code, msg := mapDomainError(err)
	logHTTPOperationError(ctx, operation, status, code, msg, err)
	writeError(w, status, code, msg)
}

func writeValidationError(ctx context.Context, w http.ResponseWriter, operation string, err error) {
	code := "VALIDATION_ERROR"
	msg := err.Error()
	logHTTPOperationError(ctx, operation, http.StatusBadRequest, code, msg, err)
	writeError(w, http.StatusBadRequest, code, msg)
}
