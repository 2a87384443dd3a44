package handler

import (
	"net/http"

	"github.com/Yigit-Sert/library-portal/internal/middleware"
	"github.com/Yigit-Sert/library-portal/internal/render"
	"github.com/Yigit-Sert/library-portal/internal/store"
)

// eventPageLimit caps how many events the admin log page shows.
const eventPageLimit = 200

// EventsHandler serves the admin event log page.
type EventsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(queries *store.Queries, renderer *render.Renderer) *EventsHandler {
	return &EventsHandler{queries: queries, renderer: renderer}
}

// EventsPageData holds data for the event log page.
type EventsPageData struct {
	Events []store.Event
	Total  int64
}

// List handles GET /admin/events - shows recent portal events, newest first.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.queries.ListRecentEvents(r.Context(), eventPageLimit)
	if err != nil {
		logAndInternalError(w, "failed to list events", "error", err)
		return
	}

	total, err := h.queries.CountEvents(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to count events", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "events", render.TemplateData{
		Title:   "Event log",
		Session: middleware.GetSession(r),
		Data:    EventsPageData{Events: events, Total: total},
	}); err != nil {
		logAndInternalError(w, "failed to render event log", "error", err)
	}
}
