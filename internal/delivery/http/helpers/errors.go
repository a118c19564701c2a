package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"culturalevents/internal/domain"
)

// WriteServiceError maps a service error onto the response envelope.
// Rule violations become 400 or 409 with the rule's message; anything unrecognised
// is logged and returned as 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if ve, ok := domain.AsValidationError(err); ok {
		WriteFieldError(w, http.StatusBadRequest, ErrCodeValidationFailed, ve.Field, ve.Error())
		return
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrDuplicateParticipation),
		errors.Is(err, domain.ErrRegistrationClosed),
		errors.Is(err, domain.ErrStaleEvent):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
	}
}
