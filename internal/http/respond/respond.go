// Package respond centralizes JSON response writing for the API
// handlers, including the mapping of validation failures to
// field-keyed error payloads.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bowlnow/crm/internal/validate"
)

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Error writes a plain error payload.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorResponse{Error: message})
}

// ServiceError maps a service-layer error to an HTTP response:
// validation failures become 400s carrying the field map, notFound
// (when non-nil and matched) becomes 404, everything else is a 500
// that hides the internal detail.
func ServiceError(w http.ResponseWriter, err, notFound error) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		JSON(w, http.StatusBadRequest, errorResponse{
			Error:  "validation failed",
			Fields: verr.Fields,
		})

		return
	}

	if notFound != nil && errors.Is(err, notFound) {
		Error(w, http.StatusNotFound, notFound.Error())
		return
	}

	slog.Error("request failed", "error", err)
	Error(w, http.StatusInternalServerError, "internal error")
}
