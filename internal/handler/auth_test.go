package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAuthLoginRedirectsToBackend(t *testing.T) {
	deps := newTestDeps(t)

	h := NewAuthHandler(deps.client, deps.renderer, deps.sm)
	req := httptest.NewRequest(http.MethodGet, RouteLogin, nil)
	w := deps.serve(t, http.HandlerFunc(h.Login), req, nil)

	assertStatus(t, w.Code, http.StatusSeeOther)
	loc := w.Header().Get("Location")
	if !strings.HasSuffix(loc, "/oauth2/authorization/google") {
		t.Errorf("login must hand off to the backend sign-in flow, got %q", loc)
	}
	if !strings.HasPrefix(loc, deps.client.BaseURL()) {
		t.Errorf("login target %q not on backend %q", loc, deps.client.BaseURL())
	}
}

func TestAuthLoginAlreadySignedIn(t *testing.T) {
	deps := newTestDeps(t)

	h := NewAuthHandler(deps.client, deps.renderer, deps.sm)
	req := httptest.NewRequest(http.MethodGet, RouteLogin, nil)
	w := deps.serve(t, http.HandlerFunc(h.Login), req, memberSession())

	assertRedirect(t, w, RouteRoot)
}

func TestAuthLogout(t *testing.T) {
	deps := newTestDeps(t)
	deps.backend.respond(http.MethodPost, "/logout", http.StatusOK, ``)

	h := NewAuthHandler(deps.client, deps.renderer, deps.sm)
	req := httptest.NewRequest(http.MethodPost, RouteLogout, nil)
	w := deps.serve(t, http.HandlerFunc(h.Logout), req, memberSession())

	assertRedirect(t, w, RouteRoot)
	call := deps.backend.lastCall(t)
	if call.Method != http.MethodPost || call.Path != "/logout" {
		t.Errorf("backend call = %s %s", call.Method, call.Path)
	}
}

func TestAuthLogoutBackendDown(t *testing.T) {
	deps := newTestDeps(t)
	// No stub response: the backend 404s the logout relay.

	h := NewAuthHandler(deps.client, deps.renderer, deps.sm)
	req := httptest.NewRequest(http.MethodPost, RouteLogout, nil)
	w := deps.serve(t, http.HandlerFunc(h.Logout), req, memberSession())

	// The portal session dies regardless.
	assertRedirect(t, w, RouteRoot)
}

func TestAuthForbiddenPage(t *testing.T) {
	deps := newTestDeps(t)

	h := NewAuthHandler(deps.client, deps.renderer, deps.sm)
	req := httptest.NewRequest(http.MethodGet, RouteForbidden, nil)
	w := deps.serve(t, http.HandlerFunc(h.Forbidden), req, memberSession())

	assertStatus(t, w.Code, http.StatusForbidden)
	if !strings.Contains(w.Body.String(), "[forbidden]") {
		t.Errorf("body = %s", w.Body.String())
	}
}
