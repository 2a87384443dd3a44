package handler

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/Yigit-Sert/library-portal/internal/model"
)

func adminSession() *model.Session {
	return &model.Session{ID: 1, Email: "admin@example.com", Role: model.RoleAdmin}
}

func TestValidateRoleChange(t *testing.T) {
	admin := adminSession()

	tests := []struct {
		name    string
		email   string
		role    model.Role
		wantMsg bool
	}{
		{"valid promotion", "jane@example.com", model.RolePersonnel, false},
		{"valid admin grant", "jane@example.com", model.RoleAdmin, false},
		{"bad email", "not-an-email", model.RoleMember, true},
		{"bad role", "jane@example.com", model.Role("SUPERUSER"), true},
		{"self demotion", "admin@example.com", model.RoleMember, true},
		{"self keeping admin", "admin@example.com", model.RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateRoleChange(admin, tt.email, tt.role)
			if (msg != "") != tt.wantMsg {
				t.Errorf("validateRoleChange() = %q; want error: %v", msg, tt.wantMsg)
			}
		})
	}
}

func TestUsersConfirmChangeRole(t *testing.T) {
	deps := newTestDeps(t)

	h := NewUsersHandler(deps.client, deps.renderer, deps.sm)
	req := postForm(RouteAdminUsers+"/role/confirm", url.Values{
		"email": {"jane@example.com"},
		"role":  {"PERSONNEL"},
	})
	w := deps.serve(t, http.HandlerFunc(h.ConfirmChangeRole), req, adminSession())

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	if !strings.Contains(body, "[confirm:Change role]") {
		t.Errorf("confirmation page = %s", body)
	}
	for _, want := range []string{"[field:email=jane@example.com]", "[field:role=PERSONNEL]"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %s: %s", want, body)
		}
	}
}

func TestUsersChangeRole(t *testing.T) {
	deps := newTestDeps(t)
	deps.backend.respond(http.MethodPut, "/api/admin/users/jane@example.com/role", http.StatusOK, `{}`)

	h := NewUsersHandler(deps.client, deps.renderer, deps.sm)
	req := postForm(RouteAdminUsers+"/role", url.Values{
		"email": {"jane@example.com"},
		"role":  {"PERSONNEL"},
	})
	w := deps.serve(t, http.HandlerFunc(h.ChangeRole), req, adminSession())

	assertRedirect(t, w, RouteRoot)
	call := deps.backend.lastCall(t)
	if call.Method != http.MethodPut || !strings.Contains(call.Body, `"role":"PERSONNEL"`) {
		t.Errorf("backend call = %s %s body=%s", call.Method, call.Path, call.Body)
	}
}

func TestUsersChangeRoleSelfDemotionBlocked(t *testing.T) {
	deps := newTestDeps(t)

	h := NewUsersHandler(deps.client, deps.renderer, deps.sm)
	req := postForm(RouteAdminUsers+"/role", url.Values{
		"email": {"admin@example.com"},
		"role":  {"MEMBER"},
	})
	w := deps.serve(t, http.HandlerFunc(h.ChangeRole), req, adminSession())

	assertRedirect(t, w, RouteRoot)
	if len(deps.backend.calls) != 0 {
		t.Error("self demotion must be refused before reaching the backend")
	}
}
