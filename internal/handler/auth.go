package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/Yigit-Sert/library-portal/internal/middleware"
	"github.com/Yigit-Sert/library-portal/internal/relay"
	"github.com/Yigit-Sert/library-portal/internal/render"
)

// AuthHandler handles sign-in and sign-out. The backend owns credentials:
// signing in is a full-page navigation to its OAuth flow, and signing out
// is relayed so the backend session dies with the portal one.
type AuthHandler struct {
	client   *relay.Client
	renderer *render.Renderer
	sm       *scs.SessionManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(client *relay.Client, renderer *render.Renderer, sm *scs.SessionManager) *AuthHandler {
	return &AuthHandler{client: client, renderer: renderer, sm: sm}
}

// Login redirects the browser to the backend's Google sign-in flow.
// Already-signed-in users go back to the dashboard.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r) != nil {
		http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
		return
	}

	target := strings.TrimSuffix(h.client.BaseURL(), "/") + relay.PathOAuthLogin
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Logout relays the sign-out to the backend, then destroys the portal
// session. The portal session is destroyed even when the relay fails: a
// dead backend must not pin a user into a stale identity.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	creds := relay.CredentialsFromRequest(r)
	if err := h.client.Logout(r.Context(), creds); err != nil && !errors.Is(err, relay.ErrUnauthorized) {
		slog.Warn("backend logout failed", "error", err, "category", "auth")
	}

	if err := h.sm.Destroy(r.Context()); err != nil {
		slog.Error("failed to destroy session", "error", err)
	}

	slog.Info("user signed out", "category", "auth")
	flashSuccess(w, r, h.renderer, RouteRoot, "You have been signed out.")
}

// Forbidden renders the access-denied page with a 403 status. The user
// keeps their session; the page offers a way back to the dashboard.
func (h *AuthHandler) Forbidden(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.RenderStatus(w, r, http.StatusForbidden, "forbidden", render.TemplateData{
		Title:   "Access denied",
		Session: middleware.GetSession(r),
	}); err != nil {
		logAndInternalError(w, "failed to render forbidden page", "error", err)
	}
}
