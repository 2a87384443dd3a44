package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"

	"github.com/alexedwards/scs/v2"

	"github.com/Yigit-Sert/library-portal/internal/middleware"
	"github.com/Yigit-Sert/library-portal/internal/model"
	"github.com/Yigit-Sert/library-portal/internal/relay"
	"github.com/Yigit-Sert/library-portal/internal/render"
)

// UsersHandler handles backend account role management for admins.
type UsersHandler struct {
	client   *relay.Client
	renderer *render.Renderer
	sm       *scs.SessionManager
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(client *relay.Client, renderer *render.Renderer, sm *scs.SessionManager) *UsersHandler {
	return &UsersHandler{client: client, renderer: renderer, sm: sm}
}

// validateRoleChange checks the email/role pair from the admin panel form.
// An admin demoting themselves is refused here rather than relayed: locking
// yourself out of the panel that could undo it is never what was meant.
func validateRoleChange(session *model.Session, email string, role model.Role) string {
	if _, err := mail.ParseAddress(email); err != nil {
		return "Invalid email address"
	}
	if !role.IsValid() {
		return "Invalid role"
	}
	if session != nil && session.Email == email && role != model.RoleAdmin {
		return "You cannot remove your own admin role"
	}
	return ""
}

// ConfirmChangeRole renders the confirmation page before a role change.
func (h *UsersHandler) ConfirmChangeRole(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteRoot) {
		return
	}

	email := r.FormValue("email")
	role := model.Role(r.FormValue("role"))
	if msg := validateRoleChange(middleware.GetSession(r), email, role); msg != "" {
		flashError(w, r, h.renderer, RouteRoot, msg)
		return
	}

	renderConfirm(w, r, h.renderer, ConfirmData{
		Heading:   "Change role",
		Message:   fmt.Sprintf("Change the role of %s to %s? Their access changes immediately.", email, role),
		ActionURL: RouteAdminUsers + "/role",
		Submit:    "Change role",
		Fields: map[string]string{
			"email": email,
			"role":  string(role),
		},
	})
}

// ChangeRole relays an account role change.
func (h *UsersHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteRoot) {
		return
	}

	email := r.FormValue("email")
	role := model.Role(r.FormValue("role"))
	if msg := validateRoleChange(middleware.GetSession(r), email, role); msg != "" {
		flashError(w, r, h.renderer, RouteRoot, msg)
		return
	}

	if err := h.client.ChangeRole(r.Context(), relay.CredentialsFromRequest(r), email, role); err != nil {
		handleRelayError(w, r, h.renderer, h.sm, err, RouteRoot)
		return
	}

	slog.Warn("account role changed", "email", email, "role", role, "category", "auth")
	flashSuccess(w, r, h.renderer, RouteRoot, fmt.Sprintf("Role of %s changed to %s.", email, role))
}
