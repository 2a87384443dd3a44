package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/Yigit-Sert/library-portal/internal/relay"
	"github.com/Yigit-Sert/library-portal/internal/render"
)

// BorrowingsHandler handles loan issue and return for personnel.
type BorrowingsHandler struct {
	client   *relay.Client
	renderer *render.Renderer
	sm       *scs.SessionManager
}

// NewBorrowingsHandler creates a new BorrowingsHandler.
func NewBorrowingsHandler(client *relay.Client, renderer *render.Renderer, sm *scs.SessionManager) *BorrowingsHandler {
	return &BorrowingsHandler{client: client, renderer: renderer, sm: sm}
}

// Issue relays a direct loan to a member, bypassing the request flow.
// Blank dates default to today and the standard loan period.
func (h *BorrowingsHandler) Issue(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteRoot) {
		return
	}

	memberID, err := strconv.ParseInt(r.FormValue("member_id"), 10, 64)
	if err != nil || memberID <= 0 {
		flashError(w, r, h.renderer, RouteRoot, "Select a member")
		return
	}
	bookID, err := strconv.ParseInt(r.FormValue("book_id"), 10, 64)
	if err != nil || bookID <= 0 {
		flashError(w, r, h.renderer, RouteRoot, "Select a book")
		return
	}

	issueDate := r.FormValue("issue_date")
	dueDate := r.FormValue("due_date")
	if issueDate == "" {
		issueDate = time.Now().Format("2006-01-02")
	}
	if dueDate == "" {
		start, parseErr := time.Parse("2006-01-02", issueDate)
		if parseErr != nil {
			flashError(w, r, h.renderer, RouteRoot, "Invalid issue date")
			return
		}
		dueDate = start.AddDate(0, 0, loanPeriodDays).Format("2006-01-02")
	}

	if err := h.client.IssueBook(r.Context(), relay.CredentialsFromRequest(r), memberID, bookID, issueDate, dueDate); err != nil {
		handleRelayError(w, r, h.renderer, h.sm, err, RouteRoot)
		return
	}

	slog.Info("book issued", "member_id", memberID, "book_id", bookID, "due_date", dueDate)
	flashSuccess(w, r, h.renderer, RouteRoot, "Book issued.")
}

// ConfirmReturn renders the confirmation page before closing a loan.
func (h *BorrowingsHandler) ConfirmReturn(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, RouteRoot)
	if !ok {
		return
	}

	renderConfirm(w, r, h.renderer, ConfirmData{
		Heading:   "Mark as returned",
		Message:   "Mark this borrowing as returned? The return date will be set to today.",
		ActionURL: fmt.Sprintf("%s/%d/return", RouteStaffBorrowings, id),
		Submit:    "Mark returned",
	})
}

// Return relays closing a loan.
func (h *BorrowingsHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, RouteRoot)
	if !ok {
		return
	}

	if err := h.client.ReturnBook(r.Context(), relay.CredentialsFromRequest(r), id); err != nil {
		handleRelayError(w, r, h.renderer, h.sm, err, RouteRoot)
		return
	}

	slog.Info("borrowing returned", "borrowing_id", id)
	flashSuccess(w, r, h.renderer, RouteRoot, "Borrowing marked as returned.")
}
