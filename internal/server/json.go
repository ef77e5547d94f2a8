package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fftourney/hub/internal/hub"
	"github.com/fftourney/hub/internal/session"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries one message per rejected field.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeSessionError maps controller errors to status codes.
func writeSessionError(w http.ResponseWriter, err error) {
	var verr *hub.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, session.ErrNotReady):
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, "tournaments are still loading")
	case errors.Is(err, session.ErrTournamentNotFound):
		writeError(w, http.StatusNotFound, "tournament not found")
	case errors.Is(err, session.ErrNotOpen):
		writeError(w, http.StatusConflict, "tournament is not open for registration")
	case errors.Is(err, session.ErrNoProfile):
		writeError(w, http.StatusPreconditionFailed, "create a profile first")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
