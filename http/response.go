package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bucketlabs/s3origin"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errCode,
		Message: message,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError maps an origin error to its HTTP status. Invalid paths are
// reported as plain 404s so clients cannot distinguish a rejected path from
// a missing object.
func HandleError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.Canceled) {
		// Client went away; there is nobody to write a response to.
		return
	}

	if errors.Is(err, s3origin.ErrNotFound) || errors.Is(err, s3origin.ErrInvalidPath) {
		WriteError(w, http.StatusNotFound, "not_found", "Object not found")
		return
	}

	if errors.Is(err, s3origin.ErrTooLarge) {
		slog.Warn("object exceeds size limit", "error", err)
		WriteError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "Object exceeds the maximum allowed size")
		return
	}

	if errors.Is(err, s3origin.ErrUpstream) {
		slog.Error("upstream store failure", "error", err)
		WriteError(w, http.StatusBadGateway, "bad_gateway", "Upstream store failure")
		return
	}

	slog.Error("request error", "error", err)
	WriteError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
}
