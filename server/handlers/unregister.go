package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// maxUnregisterBody bounds the request body read by UnregisterHandler.
const maxUnregisterBody = 4 << 10

// UnregisterRequest defines the request body for POST /activities/{activity}/unregister.
type UnregisterRequest struct {
	Participant *string `json:"participant"`
}

// UnregisterHandler removes a participant from an activity.
type UnregisterHandler struct {
	logger     *slog.Logger
	withdrawer Withdrawer
}

// NewUnregisterHandler creates a new UnregisterHandler.
func NewUnregisterHandler(logger *slog.Logger, withdrawer Withdrawer) *UnregisterHandler {
	return &UnregisterHandler{
		logger:     logger,
		withdrawer: withdrawer,
	}
}

// ServeHTTP implements http.Handler.
func (h *UnregisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := RequestLogger(r, h.logger)
	activity := r.PathValue("activity")

	var req UnregisterRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxUnregisterBody))
	if err := dec.Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if req.Participant == nil {
		writeDetail(w, http.StatusBadRequest, "missing required field: participant")
		return
	}
	email := *req.Participant

	conf, err := h.withdrawer.Withdraw(activity, email)
	if err != nil {
		logger.Info("unregister rejected", "activity", activity, "email", email, "error", err)
		writeRegistryError(w, logger, err)
		return
	}

	logger.Info("participant unregistered", "activity", activity, "email", email)
	writeJSON(w, http.StatusOK, MessageResponse{Message: conf.Message})
}
