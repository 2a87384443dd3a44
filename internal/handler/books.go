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

// BooksHandler handles catalog management for personnel.
type BooksHandler struct {
	client   *relay.Client
	renderer *render.Renderer
	sm       *scs.SessionManager
}

// NewBooksHandler creates a new BooksHandler.
func NewBooksHandler(client *relay.Client, renderer *render.Renderer, sm *scs.SessionManager) *BooksHandler {
	return &BooksHandler{client: client, renderer: renderer, sm: sm}
}

// BookFormData drives the add/edit book form.
type BookFormData struct {
	Book      model.Book
	IsEdit    bool
	ActionURL string
}

// NewForm renders the empty add-book form.
func (h *BooksHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, BookFormData{ActionURL: RouteStaffBooks})
}

// Create relays a new catalog entry.
func (h *BooksHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteRoot) {
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	publisher := strings.TrimSpace(r.FormValue("publisher"))
	if title == "" {
		flashError(w, r, h.renderer, RouteStaffBooks+"/new", "Title is required")
		return
	}

	if err := h.client.CreateBook(r.Context(), relay.CredentialsFromRequest(r), title, publisher); err != nil {
		handleRelayError(w, r, h.renderer, h.sm, err, RouteStaffBooks+"/new")
		return
	}

	slog.Info("book created", "title", title)
	flashSuccess(w, r, h.renderer, RouteRoot, "Book added to the catalog.")
}

// EditForm renders the edit form for an existing book.
func (h *BooksHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, RouteRoot)
	if !ok {
		return
	}

	book, err := h.client.GetBook(r.Context(), relay.CredentialsFromRequest(r), id)
	if err != nil {
		handleRelayError(w, r, h.renderer, h.sm, err, RouteRoot)
		return
	}

	h.renderForm(w, r, BookFormData{
		Book:      book,
		IsEdit:    true,
		ActionURL: fmt.Sprintf("%s/%d", RouteStaffBooks, id),
	})
}

// Update relays an edit of an existing book.
func (h *BooksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, RouteRoot)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, RouteRoot) {
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	publisher := strings.TrimSpace(r.FormValue("publisher"))
	editURL := fmt.Sprintf("%s/%d/edit", RouteStaffBooks, id)
	if title == "" {
		flashError(w, r, h.renderer, editURL, "Title is required")
		return
	}

	if err := h.client.UpdateBook(r.Context(), relay.CredentialsFromRequest(r), id, title, publisher); err != nil {
		handleRelayError(w, r, h.renderer, h.sm, err, editURL)
		return
	}

	slog.Info("book updated", "book_id", id)
	flashSuccess(w, r, h.renderer, RouteRoot, "Book updated.")
}

// ConfirmDelete renders the deletion confirmation page for a book.
func (h *BooksHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, RouteRoot)
	if !ok {
		return
	}

	book, err := h.client.GetBook(r.Context(), relay.CredentialsFromRequest(r), id)
	if err != nil {
		handleRelayError(w, r, h.renderer, h.sm, err, RouteRoot)
		return
	}

	renderConfirm(w, r, h.renderer, ConfirmData{
		Heading:   "Delete book",
		Message:   fmt.Sprintf("Delete %q from the catalog? This cannot be undone.", book.Title),
		ActionURL: fmt.Sprintf("%s/%d/delete", RouteStaffBooks, id),
		Submit:    "Delete",
	})
}

// Delete relays a catalog deletion.
func (h *BooksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, RouteRoot)
	if !ok {
		return
	}

	if err := h.client.DeleteBook(r.Context(), relay.CredentialsFromRequest(r), id); err != nil {
		handleRelayError(w, r, h.renderer, h.sm, err, RouteRoot)
		return
	}

	slog.Info("book deleted", "book_id", id)
	flashSuccess(w, r, h.renderer, RouteRoot, "Book deleted.")
}

func (h *BooksHandler) renderForm(w http.ResponseWriter, r *http.Request, data BookFormData) {
	title := "Add book"
	if data.IsEdit {
		title = "Edit book"
	}
	if err := h.renderer.Render(w, r, "book_edit", render.TemplateData{
		Title:   title,
		Session: middleware.GetSession(r),
		Data:    data,
	}); err != nil {
		logAndInternalError(w, "failed to render book form", "error", err)
	}
}
