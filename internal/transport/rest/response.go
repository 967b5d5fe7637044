package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osfio/collections-moderation/internal/domain"
)

// Error codes returned in the error envelope.
const (
	CodeValidation        = "VALIDATION"
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeForbidden         = "FORBIDDEN"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeNotFound          = "NOT_FOUND"
	CodeGone              = "GONE"
	CodeAlreadyExists     = "ALREADY_EXISTS"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL"
)

// ErrorBody is the error envelope: {"error": {...}}.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes one failed request.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, code, message string, fields ...domain.FieldError) {
	writeJSON(w, status, ErrorBody{Error: ErrorDetail{Code: code, Message: message, Fields: fields}})
}

// handleError maps a service error onto the envelope. Only unexpected
// errors are logged; they never leak their text to the client.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *domain.ValidationError
		terr *domain.TransitionError
		perr *domain.PermissionError
	)

	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, CodeValidation, verr.Error(), verr.Errors...)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, CodeUnauthenticated, "authentication required")
	case errors.As(err, &perr):
		writeError(w, http.StatusForbidden, CodeForbidden, perr.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, CodeForbidden, "forbidden")
	case errors.As(err, &terr):
		writeError(w, http.StatusConflict, CodeInvalidTransition, terr.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		writeError(w, http.StatusConflict, CodeInvalidTransition, "submission state changed, retry")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, CodeNotFound, "not found")
	case errors.Is(err, domain.ErrGone):
		writeError(w, http.StatusGone, CodeGone, "artifact has been deleted")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, CodeAlreadyExists, "artifact already has a live submission in this collection")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, CodeConflict, err.Error())
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, CodeInternal, "internal server error")
	}
}
