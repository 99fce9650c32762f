package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	calcerr "github.com/amterp/calcus/internal/errors"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Warn("failed to encode response", "error", err)
		}
	}
}

// Error writes an error response, mapping domain errors to HTTP status codes.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var notFound *calcerr.NotFoundError
	var validation *calcerr.ValidationError
	var invariant *calcerr.InvariantError

	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &validation):
		status = http.StatusBadRequest
	case errors.As(err, &invariant):
		slog.Error("invariant violation", "error", err)
	}

	JSON(w, status, map[string]string{"error": err.Error()})
}

// BadRequest writes a 400 error with the given message.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, map[string]string{"error": message})
}

// Conflict writes a 409 error with the given message.
func Conflict(w http.ResponseWriter, message string) {
	JSON(w, http.StatusConflict, map[string]string{"error": message})
}
