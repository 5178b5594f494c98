package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/adapter/http/dto"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrMembershipNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrTournamentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrInvalidPoints),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidDescription),
		errors.Is(err, domain.ErrMissingParameter),
		errors.Is(err, domain.ErrUnknownOperation),
		errors.Is(err, domain.ErrNoPendingOperation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrMembershipExists),
		errors.Is(err, domain.ErrReferenceConflict),
		errors.Is(err, domain.ErrAlreadyRegistered),
		errors.Is(err, domain.ErrTournamentFull):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientPoints),
		errors.Is(err, domain.ErrMembershipFrozen),
		errors.Is(err, domain.ErrTournamentNotOpen),
		errors.Is(err, domain.ErrRegistrationClosed),
		errors.Is(err, domain.ErrCancelDeadlinePassed),
		errors.Is(err, domain.ErrTournamentNotCancellable),
		errors.Is(err, domain.ErrNotRegistered):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
