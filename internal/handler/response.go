package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/Yigit-Sert/library-portal/internal/middleware"
	"github.com/Yigit-Sert/library-portal/internal/relay"
	"github.com/Yigit-Sert/library-portal/internal/render"
)

// flashAndRedirect sets a flash message and redirects to the given URL.
// Uses http.StatusSeeOther (303) for POST redirects.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message, messageType string) {
	renderer.SetFlash(r, message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashError sets an error flash message and redirects to the given URL.
func flashError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, flashTypeError)
}

// flashSuccess sets a success flash message and redirects to the given URL.
func flashSuccess(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, flashTypeSuccess)
}

// parseFormOrRedirect parses the request form and redirects with an error
// message on failure. Returns true if parsing succeeded.
func parseFormOrRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirectURL string) bool {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, renderer, redirectURL, "Invalid form data")
		return false
	}
	return true
}

// parseIDParam reads the {id} chi URL parameter. On failure it redirects
// with an error flash and returns false.
func parseIDParam(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirectURL string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		flashError(w, r, renderer, redirectURL, "Invalid ID")
		return 0, false
	}
	return id, true
}

// logAndHTTPError logs an error and writes an HTTP error response.
func logAndHTTPError(w http.ResponseWriter, message string, statusCode int, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, message, statusCode)
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	logAndHTTPError(w, "Internal Server Error", http.StatusInternalServerError, logMsg, args...)
}

// handleRelayError centrally translates backend authorization failures from
// a relayed write. A 401 means the backend session is gone: the portal
// session is destroyed and the user lands on the public page with a sign-in
// prompt. A 403 means the session is live but the action is not permitted,
// so the user keeps their session and is told so; nothing from the backend
// body is shown either way. Returns true if the error was handled.
func handleRelayError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, sm *scs.SessionManager, err error, backURL string) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, relay.ErrUnauthorized):
		if sm != nil {
			if destroyErr := sm.Destroy(r.Context()); destroyErr != nil {
				slog.Error("failed to destroy session", "error", destroyErr)
			}
		}
		flashAndRedirect(w, r, renderer, RouteRoot,
			"Your session has expired. Please sign in again.", flashTypeInfo)
		return true

	case errors.Is(err, relay.ErrForbidden):
		slog.Warn("backend denied action",
			"method", r.Method,
			"path", middleware.GetRequestPath(r.Context()),
			"category", "relay",
		)
		http.Redirect(w, r, RouteForbidden, http.StatusSeeOther)
		return true

	default:
		slog.Error("backend request failed", "error", err, "path", r.URL.Path, "category", "relay")
		flashError(w, r, renderer, backURL, "The library service is unavailable right now. Please try again.")
		return true
	}
}
