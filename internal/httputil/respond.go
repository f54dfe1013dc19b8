// Package httputil provides JSON request decoding and response helpers
// shared by all handler groups.
package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"craftfolio/internal/models"
)

// errorResponse is the JSON body of every error reply.
type errorResponse struct {
	Error string `json:"error"`
}

// RespondJSON writes data as a JSON response with the given status code.
// It marshals first so an encoding failure becomes a clean 500 instead of a
// truncated body after headers are sent.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		slog.Error("response encoding failed", "error", err)
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondError writes a JSON error body with the given status code.
func RespondError(w http.ResponseWriter, status int, message string) {
	payload, err := json.Marshal(errorResponse{Error: message})
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondDomainError maps a domain error to its HTTP status and writes it.
// Unrecognized errors are logged and collapsed into an opaque 500.
func RespondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrEmailTaken):
		RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		RespondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, models.ErrSlugTaken):
		RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		RespondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, models.ErrForbidden):
		RespondError(w, http.StatusForbidden, "forbidden")
	default:
		slog.Error("unhandled error", "error", err)
		RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
