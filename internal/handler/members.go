package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/Yigit-Sert/library-portal/internal/middleware"
	"github.com/Yigit-Sert/library-portal/internal/model"
	"github.com/Yigit-Sert/library-portal/internal/relay"
	"github.com/Yigit-Sert/library-portal/internal/render"
)

// MembersHandler handles member registry management for personnel.
type MembersHandler struct {
	client   *relay.Client
	renderer *render.Renderer
	sm       *scs.SessionManager
}

// NewMembersHandler creates a new MembersHandler.
func NewMembersHandler(client *relay.Client, renderer *render.Renderer, sm *scs.SessionManager) *MembersHandler {
	return &MembersHandler{client: client, renderer: renderer, sm: sm}
}

// MemberFormData drives the add/edit member form.
type MemberFormData struct {
	Member    model.Member
	IsEdit    bool
	ActionURL string
}

// NewForm renders the empty member registration form.
func (h *MembersHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, MemberFormData{ActionURL: RouteStaffMembers})
}

// Create relays a new member registration.
func (h *MembersHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteRoot) {
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	address := strings.TrimSpace(r.FormValue("address"))
	telephone := strings.TrimSpace(r.FormValue("telephone"))
	if name == "" {
		flashError(w, r, h.renderer, RouteStaffMembers+"/new", "Name is required")
		return
	}

	if err := h.client.CreateMember(r.Context(), relay.CredentialsFromRequest(r), name, address, telephone); err != nil {
		handleRelayError(w, r, h.renderer, h.sm, err, RouteStaffMembers+"/new")
		return
	}

	slog.Info("member registered", "name", name)
	flashSuccess(w, r, h.renderer, RouteRoot, "Member registered.")
}

// EditForm renders the edit form for an existing member.
func (h *MembersHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, RouteRoot)
	if !ok {
		return
	}

	member, err := h.client.GetMember(r.Context(), relay.CredentialsFromRequest(r), id)
	if err != nil {
		handleRelayError(w, r, h.renderer, h.sm, err, RouteRoot)
		return
	}

	h.renderForm(w, r, MemberFormData{
		Member:    member,
		IsEdit:    true,
		ActionURL: fmt.Sprintf("%s/%d", RouteStaffMembers, id),
	})
}

// Update relays an edit of an existing member.
func (h *MembersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, RouteRoot)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, RouteRoot) {
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	address := strings.TrimSpace(r.FormValue("address"))
	telephone := strings.TrimSpace(r.FormValue("telephone"))
	editURL := fmt.Sprintf("%s/%d/edit", RouteStaffMembers, id)
	if name == "" {
		flashError(w, r, h.renderer, editURL, "Name is required")
		return
	}

	if err := h.client.UpdateMember(r.Context(), relay.CredentialsFromRequest(r), id, name, address, telephone); err != nil {
		handleRelayError(w, r, h.renderer, h.sm, err, editURL)
		return
	}

	slog.Info("member updated", "member_id", id)
	flashSuccess(w, r, h.renderer, RouteRoot, "Member updated.")
}

// ConfirmDelete renders the deletion confirmation page for a member.
func (h *MembersHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, RouteRoot)
	if !ok {
		return
	}

	member, err := h.client.GetMember(r.Context(), relay.CredentialsFromRequest(r), id)
	if err != nil {
		handleRelayError(w, r, h.renderer, h.sm, err, RouteRoot)
		return
	}

	renderConfirm(w, r, h.renderer, ConfirmData{
		Heading:   "Delete member",
		Message:   fmt.Sprintf("Delete member %q? Their borrowing history stays on record.", member.Name),
		ActionURL: fmt.Sprintf("%s/%d/delete", RouteStaffMembers, id),
		Submit:    "Delete",
	})
}

// Delete relays a member deletion.
func (h *MembersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, RouteRoot)
	if !ok {
		return
	}

	if err := h.client.DeleteMember(r.Context(), relay.CredentialsFromRequest(r), id); err != nil {
		handleRelayError(w, r, h.renderer, h.sm, err, RouteRoot)
		return
	}

	slog.Info("member deleted", "member_id", id)
	flashSuccess(w, r, h.renderer, RouteRoot, "Member deleted.")
}

func (h *MembersHandler) renderForm(w http.ResponseWriter, r *http.Request, data MemberFormData) {
	title := "Register member"
	if data.IsEdit {
		title = "Edit member"
	}
	if err := h.renderer.Render(w, r, "member_edit", render.TemplateData{
		Title:   title,
		Session: middleware.GetSession(r),
		Data:    data,
	}); err != nil {
		logAndInternalError(w, "failed to render member form", "error", err)
	}
}
