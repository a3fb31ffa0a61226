package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mindcredit/mindcredit-api/internal/api/middleware"
	"github.com/mindcredit/mindcredit-api/internal/api/shared"
	"github.com/mindcredit/mindcredit-api/internal/breaker"
	"github.com/mindcredit/mindcredit-api/internal/domain"
	"github.com/mindcredit/mindcredit-api/internal/ingest"
	"github.com/mindcredit/mindcredit-api/internal/redact"
	"github.com/mindcredit/mindcredit-api/internal/scoring"
	"github.com/mindcredit/mindcredit-api/internal/service"
	"github.com/mindcredit/mindcredit-api/internal/service/auth"
	"github.com/mindcredit/mindcredit-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking their types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrMissingCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCreditLimitNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, service.ErrServiceUnavailable),
		errors.Is(err, breaker.ErrOpen):
		return http.StatusServiceUnavailable

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidValue),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrInvalidBody),
		isValidationErrors(err):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrMissingCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return "Invalid credentials"

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, service.ErrCreditLimitNotFound),
		errors.Is(err, store.ErrCreditLimitNotFound):
		return "Credit limit not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, service.ErrServiceUnavailable),
		errors.Is(err, breaker.ErrOpen):
		return "Risk scoring is temporarily unavailable, try again later"

	case errors.Is(err, service.ErrCreditLimitNotOwned):
		return "Credit limit belongs to another user"

	case errors.Is(err, domain.ErrInvalidRiskScore):
		return "Risk score out of range"

	case errors.Is(err, domain.ErrInvalidWindow):
		return "Window end must not precede start"

	case errors.Is(err, ingest.ErrUnknownSignalType):
		return "Unknown signal type"

	case isValidationErrors(err):
		return SanitizeValidationError(err)

	case errors.Is(err, shared.ErrInvalidBody):
		return "Invalid request format"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"

	case errors.Is(err, ingest.ErrInvalidPayload),
		errors.Is(err, domain.ErrValidation):
		return redact.Error(err)

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, scoring.ErrScoringFailed),
		errors.Is(err, scoring.ErrInvalidResponse):
		return "Failed to compute risk score"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes an error response for err. A non-empty fallback
// replaces the generic message for unmapped 500s.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Basic realm="`+middleware.Realm+`"`)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError turns validator output into "Invalid <field>: <reason>".
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}
	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", toSnake(fe.Field()), getValidationTagMessage(fe.Tag()))
}

func isValidationErrors(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too small"
	case "max":
		return "too large"
	case "oneof":
		return "invalid value"
	case "gtefield":
		return "must not precede start"
	default:
		return "validation failed"
	}
}

// toSnake converts a Go field name such as CreditLimitID to credit_limit_id.
func toSnake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
