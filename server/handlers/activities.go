package handlers

import (
	"log/slog"
	"net/http"
)

// ActivitiesHandler handles requests for the full list of activities.
type ActivitiesHandler struct {
	lister ActivityLister
}

// NewActivitiesHandler creates a new ActivitiesHandler.
func NewActivitiesHandler(lister ActivityLister) *ActivitiesHandler {
	return &ActivitiesHandler{
		lister: lister,
	}
}

// ServeHTTP implements http.Handler.
func (h *ActivitiesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.lister.List())
}

// ActivityHandler handles requests for a single activity.
type ActivityHandler struct {
	logger *slog.Logger
	getter ActivityGetter
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(logger *slog.Logger, getter ActivityGetter) *ActivityHandler {
	return &ActivityHandler{
		logger: logger,
		getter: getter,
	}
}

// ServeHTTP implements http.Handler.
func (h *ActivityHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a, err := h.getter.Get(r.PathValue("activity"))
	if err != nil {
		writeRegistryError(w, RequestLogger(r, h.logger), err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
