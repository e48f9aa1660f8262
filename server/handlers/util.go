package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nomis52/mergington/registry"
)

// ErrorResponse is returned when an error occurs.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse is returned by successful roster changes.
type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}

// writeRegistryError maps a registry error to its HTTP status and message.
// Unknown activities are 404; every other rejection is the caller's fault.
func writeRegistryError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Activity not found")
	case errors.Is(err, registry.ErrAlreadyRegistered):
		writeDetail(w, http.StatusBadRequest, "Student already signed up for this activity")
	case errors.Is(err, registry.ErrFull):
		writeDetail(w, http.StatusBadRequest, "Activity is full")
	case errors.Is(err, registry.ErrNotRegistered):
		writeDetail(w, http.StatusBadRequest, "Participant not found in activity")
	default:
		logger.Error("unexpected registry error", "error", err)
		writeDetail(w, http.StatusInternalServerError, "internal error")
	}
}
