package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestMembersCreate(t *testing.T) {
	deps := newTestDeps(t)
	deps.backend.respond(http.MethodPost, "/api/members", http.StatusCreated, `{}`)

	h := NewMembersHandler(deps.client, deps.renderer, deps.sm)
	req := postForm(RouteStaffMembers, url.Values{
		"name":      {"Ada Lovelace"},
		"address":   {"12 Analytical Way"},
		"telephone": {"555-0101"},
	})
	w := deps.serve(t, http.HandlerFunc(h.Create), req, staffSession())

	assertRedirect(t, w, RouteRoot)

	call := deps.backend.lastCall(t)
	if call.Method != http.MethodPost || call.Path != "/api/members" {
		t.Errorf("backend call = %s %s", call.Method, call.Path)
	}
	if !strings.Contains(call.Body, `"name":"Ada Lovelace"`) {
		t.Errorf("body = %s", call.Body)
	}
}

func TestMembersCreateRequiresName(t *testing.T) {
	deps := newTestDeps(t)

	h := NewMembersHandler(deps.client, deps.renderer, deps.sm)
	req := postForm(RouteStaffMembers, url.Values{"name": {"  "}, "address": {"somewhere"}})
	w := deps.serve(t, http.HandlerFunc(h.Create), req, staffSession())

	assertRedirect(t, w, RouteStaffMembers+"/new")
	if len(deps.backend.calls) != 0 {
		t.Error("invalid form must not reach the backend")
	}
}

func TestMembersUpdate(t *testing.T) {
	deps := newTestDeps(t)
	deps.backend.respond(http.MethodPut, "/api/members/5", http.StatusOK, `{}`)

	h := NewMembersHandler(deps.client, deps.renderer, deps.sm)
	router := chi.NewRouter()
	router.Post("/staff/members/{id}", h.Update)

	req := postForm("/staff/members/5", url.Values{
		"name":      {"Ada Lovelace"},
		"telephone": {"555-0102"},
	})
	w := deps.serve(t, router, req, staffSession())

	assertRedirect(t, w, RouteRoot)
	call := deps.backend.lastCall(t)
	if call.Method != http.MethodPut || call.Path != "/api/members/5" {
		t.Errorf("backend call = %s %s", call.Method, call.Path)
	}
}

func TestMembersConfirmDelete(t *testing.T) {
	deps := newTestDeps(t)
	deps.backend.respond(http.MethodGet, "/api/members/5", http.StatusOK,
		`{"id":5,"name":"Ada Lovelace","address":"12 Analytical Way","telephone":"555-0101"}`)

	h := NewMembersHandler(deps.client, deps.renderer, deps.sm)
	router := chi.NewRouter()
	router.Get("/staff/members/{id}/delete", h.ConfirmDelete)

	req := httptest.NewRequest(http.MethodGet, "/staff/members/5/delete", nil)
	w := deps.serve(t, router, req, staffSession())

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	if !strings.Contains(body, "[confirm:Delete member]") || !strings.Contains(body, "Ada Lovelace") {
		t.Errorf("confirmation page = %s", body)
	}
	if !strings.Contains(body, "[action-url:/staff/members/5/delete]") {
		t.Errorf("confirmation must POST back to the delete route: %s", body)
	}

	// Viewing the confirmation page fetches the member and nothing else.
	// Backing out of the page must leave the registry untouched.
	for _, call := range deps.backend.calls {
		if call.Method != http.MethodGet || call.Path != "/api/members/5" {
			t.Errorf("unexpected backend call during confirmation: %s %s", call.Method, call.Path)
		}
	}
}

func TestMembersDelete(t *testing.T) {
	deps := newTestDeps(t)
	deps.backend.respond(http.MethodDelete, "/api/members/5", http.StatusNoContent, ``)

	h := NewMembersHandler(deps.client, deps.renderer, deps.sm)
	router := chi.NewRouter()
	router.Post("/staff/members/{id}/delete", h.Delete)

	req := postForm("/staff/members/5/delete", nil)
	w := deps.serve(t, router, req, staffSession())

	assertRedirect(t, w, RouteRoot)
	call := deps.backend.lastCall(t)
	if call.Method != http.MethodDelete || call.Path != "/api/members/5" {
		t.Errorf("backend call = %s %s", call.Method, call.Path)
	}
}

func TestMembersDeleteForbidden(t *testing.T) {
	deps := newTestDeps(t)
	deps.backend.respond(http.MethodDelete, "/api/members/5", http.StatusForbidden, `denied`)

	h := NewMembersHandler(deps.client, deps.renderer, deps.sm)
	router := chi.NewRouter()
	router.Post("/staff/members/{id}/delete", h.Delete)

	req := postForm("/staff/members/5/delete", nil)
	w := deps.serve(t, router, req, staffSession())

	assertRedirect(t, w, RouteForbidden)
}

func TestMembersEditForm(t *testing.T) {
	deps := newTestDeps(t)
	deps.backend.respond(http.MethodGet, "/api/members/5", http.StatusOK,
		`{"id":5,"name":"Ada Lovelace","address":"12 Analytical Way","telephone":"555-0101"}`)

	h := NewMembersHandler(deps.client, deps.renderer, deps.sm)
	router := chi.NewRouter()
	router.Get("/staff/members/{id}/edit", h.EditForm)

	req := httptest.NewRequest(http.MethodGet, "/staff/members/5/edit", nil)
	w := deps.serve(t, router, req, staffSession())

	assertStatus(t, w.Code, http.StatusOK)
	if !strings.Contains(w.Body.String(), "[member-form:Ada Lovelace]") {
		t.Errorf("edit form = %s", w.Body.String())
	}
}
