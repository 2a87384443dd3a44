package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"

	"github.com/Yigit-Sert/library-portal/internal/relay"
	"github.com/Yigit-Sert/library-portal/internal/render"
)

// RequestsHandler handles borrow requests: members file them from the
// catalog, personnel decide them.
type RequestsHandler struct {
	client   *relay.Client
	renderer *render.Renderer
	sm       *scs.SessionManager
}

// NewRequestsHandler creates a new RequestsHandler.
func NewRequestsHandler(client *relay.Client, renderer *render.Renderer, sm *scs.SessionManager) *RequestsHandler {
	return &RequestsHandler{client: client, renderer: renderer, sm: sm}
}

// ConfirmRequest renders the confirmation page before a member requests
// a book.
func (h *RequestsHandler) ConfirmRequest(w http.ResponseWriter, r *http.Request) {
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
		Heading:   "Request book",
		Message:   fmt.Sprintf("Request to borrow %q? Personnel will review your request.", book.Title),
		ActionURL: RouteRequests,
		Submit:    "Request",
		Fields:    map[string]string{"book_id": strconv.FormatInt(id, 10)},
	})
}

// Create relays a member's borrow request.
func (h *RequestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteRoot) {
		return
	}

	bookID, err := strconv.ParseInt(r.FormValue("book_id"), 10, 64)
	if err != nil || bookID <= 0 {
		flashError(w, r, h.renderer, RouteRoot, "Invalid book")
		return
	}

	if err := h.client.RequestBook(r.Context(), relay.CredentialsFromRequest(r), bookID); err != nil {
		handleRelayError(w, r, h.renderer, h.sm, err, RouteRoot)
		return
	}

	slog.Info("borrow request filed", "book_id", bookID)
	flashSuccess(w, r, h.renderer, RouteRoot, "Request sent. You can follow its status below.")
}

// ConfirmApprove renders the confirmation page before approving a request.
func (h *RequestsHandler) ConfirmApprove(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, RouteRoot)
	if !ok {
		return
	}

	renderConfirm(w, r, h.renderer, ConfirmData{
		Heading:   "Approve request",
		Message:   "Approve this borrow request? The book will be issued to the member.",
		ActionURL: fmt.Sprintf("%s/%d/approve", RouteStaffRequests, id),
		Submit:    "Approve",
	})
}

// Approve relays request approval; the backend creates the loan.
func (h *RequestsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, RouteRoot)
	if !ok {
		return
	}

	if err := h.client.ApproveRequest(r.Context(), relay.CredentialsFromRequest(r), id); err != nil {
		handleRelayError(w, r, h.renderer, h.sm, err, RouteRoot)
		return
	}

	slog.Info("borrow request approved", "request_id", id)
	flashSuccess(w, r, h.renderer, RouteRoot, "Request approved and book issued.")
}

// ConfirmReject renders the confirmation page before rejecting a request.
func (h *RequestsHandler) ConfirmReject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, RouteRoot)
	if !ok {
		return
	}

	renderConfirm(w, r, h.renderer, ConfirmData{
		Heading:   "Reject request",
		Message:   "Reject this borrow request? The member will see the decision on their dashboard.",
		ActionURL: fmt.Sprintf("%s/%d/reject", RouteStaffRequests, id),
		Submit:    "Reject",
	})
}

// Reject relays request rejection.
func (h *RequestsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, RouteRoot)
	if !ok {
		return
	}

	if err := h.client.RejectRequest(r.Context(), relay.CredentialsFromRequest(r), id); err != nil {
		handleRelayError(w, r, h.renderer, h.sm, err, RouteRoot)
		return
	}

	slog.Info("borrow request rejected", "request_id", id)
	flashSuccess(w, r, h.renderer, RouteRoot, "Request rejected.")
}
