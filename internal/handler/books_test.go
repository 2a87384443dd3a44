package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Yigit-Sert/library-portal/internal/model"
)

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func staffSession() *model.Session {
	return &model.Session{ID: 7, Email: "staff@example.com", Role: model.RolePersonnel}
}

func TestBooksCreate(t *testing.T) {
	deps := newTestDeps(t)
	deps.backend.respond(http.MethodPost, "/api/books", http.StatusCreated, `{}`)

	h := NewBooksHandler(deps.client, deps.renderer, deps.sm)
	req := postForm(RouteStaffBooks, url.Values{"title": {"Dune"}, "publisher": {"Ace"}})
	w := deps.serve(t, http.HandlerFunc(h.Create), req, staffSession())

	assertRedirect(t, w, RouteRoot)

	call := deps.backend.lastCall(t)
	if call.Method != http.MethodPost || call.Path != "/api/books" {
		t.Errorf("backend call = %s %s", call.Method, call.Path)
	}
	if !strings.Contains(call.Body, `"title":"Dune"`) {
		t.Errorf("body = %s", call.Body)
	}
}

func TestBooksCreateRequiresTitle(t *testing.T) {
	deps := newTestDeps(t)

	h := NewBooksHandler(deps.client, deps.renderer, deps.sm)
	req := postForm(RouteStaffBooks, url.Values{"title": {"  "}})
	w := deps.serve(t, http.HandlerFunc(h.Create), req, staffSession())

	assertRedirect(t, w, RouteStaffBooks+"/new")
	if len(deps.backend.calls) != 0 {
		t.Error("invalid form must not reach the backend")
	}
}

func TestBooksUpdate(t *testing.T) {
	deps := newTestDeps(t)
	deps.backend.respond(http.MethodPut, "/api/books/3", http.StatusOK, `{}`)

	h := NewBooksHandler(deps.client, deps.renderer, deps.sm)
	router := chi.NewRouter()
	router.Post("/staff/books/{id}", h.Update)

	req := postForm("/staff/books/3", url.Values{"title": {"Dune"}, "publisher": {"Ace"}})
	w := deps.serve(t, router, req, staffSession())

	assertRedirect(t, w, RouteRoot)
	call := deps.backend.lastCall(t)
	if call.Method != http.MethodPut || call.Path != "/api/books/3" {
		t.Errorf("backend call = %s %s", call.Method, call.Path)
	}
}

func TestBooksConfirmDelete(t *testing.T) {
	deps := newTestDeps(t)
	deps.backend.respond(http.MethodGet, "/api/books/3", http.StatusOK,
		`{"id":3,"title":"Dune","publisher":"Ace"}`)

	h := NewBooksHandler(deps.client, deps.renderer, deps.sm)
	router := chi.NewRouter()
	router.Get("/staff/books/{id}/delete", h.ConfirmDelete)

	req := httptest.NewRequest(http.MethodGet, "/staff/books/3/delete", nil)
	w := deps.serve(t, router, req, staffSession())

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	if !strings.Contains(body, "[confirm:Delete book]") || !strings.Contains(body, "Dune") {
		t.Errorf("confirmation page = %s", body)
	}
	if !strings.Contains(body, "[action-url:/staff/books/3/delete]") {
		t.Errorf("confirmation must POST back to the delete route: %s", body)
	}

	// Backing out of the page must leave the catalog untouched.
	for _, call := range deps.backend.calls {
		if call.Method != http.MethodGet || call.Path != "/api/books/3" {
			t.Errorf("unexpected backend call during confirmation: %s %s", call.Method, call.Path)
		}
	}
}

func TestBooksDelete(t *testing.T) {
	deps := newTestDeps(t)
	deps.backend.respond(http.MethodDelete, "/api/books/3", http.StatusNoContent, ``)

	h := NewBooksHandler(deps.client, deps.renderer, deps.sm)
	router := chi.NewRouter()
	router.Post("/staff/books/{id}/delete", h.Delete)

	req := postForm("/staff/books/3/delete", nil)
	w := deps.serve(t, router, req, staffSession())

	assertRedirect(t, w, RouteRoot)
	call := deps.backend.lastCall(t)
	if call.Method != http.MethodDelete || call.Path != "/api/books/3" {
		t.Errorf("backend call = %s %s", call.Method, call.Path)
	}
}

func TestBooksDeleteForbidden(t *testing.T) {
	deps := newTestDeps(t)
	deps.backend.respond(http.MethodDelete, "/api/books/3", http.StatusForbidden, `denied`)

	h := NewBooksHandler(deps.client, deps.renderer, deps.sm)
	router := chi.NewRouter()
	router.Post("/staff/books/{id}/delete", h.Delete)

	req := postForm("/staff/books/3/delete", nil)
	w := deps.serve(t, router, req, staffSession())

	assertRedirect(t, w, RouteForbidden)
}

func TestBooksEditForm(t *testing.T) {
	deps := newTestDeps(t)
	deps.backend.respond(http.MethodGet, "/api/books/3", http.StatusOK,
		`{"id":3,"title":"Dune","publisher":"Ace"}`)

	h := NewBooksHandler(deps.client, deps.renderer, deps.sm)
	router := chi.NewRouter()
	router.Get("/staff/books/{id}/edit", h.EditForm)

	req := httptest.NewRequest(http.MethodGet, "/staff/books/3/edit", nil)
	w := deps.serve(t, router, req, staffSession())

	assertStatus(t, w.Code, http.StatusOK)
	if !strings.Contains(w.Body.String(), "[book-form:Dune]") {
		t.Errorf("edit form = %s", w.Body.String())
	}
}
