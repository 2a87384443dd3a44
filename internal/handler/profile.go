package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/Yigit-Sert/library-portal/internal/imaging"
	"github.com/Yigit-Sert/library-portal/internal/middleware"
	"github.com/Yigit-Sert/library-portal/internal/relay"
	"github.com/Yigit-Sert/library-portal/internal/render"
)

// ProfileHandler handles the signed-in user's profile page and picture upload.
type ProfileHandler struct {
	client   *relay.Client
	renderer *render.Renderer
	sm       *scs.SessionManager
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(client *relay.Client, renderer *render.Renderer, sm *scs.SessionManager) *ProfileHandler {
	return &ProfileHandler{client: client, renderer: renderer, sm: sm}
}

// Show renders the profile page.
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "profile", render.TemplateData{
		Title:   "Profile",
		Session: middleware.GetSession(r),
	}); err != nil {
		logAndInternalError(w, "failed to render profile", "error", err)
	}
}

// UploadPicture normalizes the uploaded image locally, then relays it to
// the backend. Oversized or undecodable uploads never leave the portal.
func (h *ProfileHandler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		flashError(w, r, h.renderer, RouteProfile, "Upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("picture")
	if err != nil {
		flashError(w, r, h.renderer, RouteProfile, "Choose an image to upload")
		return
	}
	defer file.Close()

	normalized, err := imaging.NormalizeAvatar(file)
	if err != nil {
		if errors.Is(err, imaging.ErrTooLarge) {
			flashError(w, r, h.renderer, RouteProfile, "Image is too large")
			return
		}
		slog.Warn("avatar normalization failed", "error", err, "filename", header.Filename)
		flashError(w, r, h.renderer, RouteProfile, "That file does not look like an image")
		return
	}

	creds := relay.CredentialsFromRequest(r)
	if err := h.client.UploadProfilePicture(r.Context(), creds, "avatar.jpg", normalized); err != nil {
		handleRelayError(w, r, h.renderer, h.sm, err, RouteProfile)
		return
	}

	slog.Info("profile picture updated", "bytes", len(normalized))
	flashSuccess(w, r, h.renderer, RouteProfile, "Profile picture updated.")
}
