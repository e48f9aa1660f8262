package handlers

import (
	"log/slog"
	"net/http"
)

// SignupHandler handles POST /activities/{activity}/signup?email=...
type SignupHandler struct {
	logger   *slog.Logger
	enroller Enroller
}

// NewSignupHandler creates a new SignupHandler.
func NewSignupHandler(logger *slog.Logger, enroller Enroller) *SignupHandler {
	return &SignupHandler{
		logger:   logger,
		enroller: enroller,
	}
}

// ServeHTTP implements http.Handler.
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := RequestLogger(r, h.logger)
	activity := r.PathValue("activity")

	query := r.URL.Query()
	if !query.Has("email") {
		writeDetail(w, http.StatusBadRequest, "missing required query parameter: email")
		return
	}
	email := query.Get("email")

	conf, err := h.enroller.Enroll(activity, email)
	if err != nil {
		logger.Info("signup rejected", "activity", activity, "email", email, "error", err)
		writeRegistryError(w, logger, err)
		return
	}

	logger.Info("student signed up", "activity", activity, "email", email)
	writeJSON(w, http.StatusOK, MessageResponse{Message: conf.Message})
}
