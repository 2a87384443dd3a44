package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Yigit-Sert/library-portal/internal/middleware"
	"github.com/Yigit-Sert/library-portal/internal/model"
	"github.com/Yigit-Sert/library-portal/internal/relay"
	"github.com/Yigit-Sert/library-portal/internal/render"
	"github.com/Yigit-Sert/library-portal/internal/view"
)

// loanPeriodDays is the default loan length offered on the issue form.
const loanPeriodDays = 14

// HomeHandler renders the single-page dashboard composition.
type HomeHandler struct {
	client   *relay.Client
	renderer *render.Renderer
	sm       *scs.SessionManager
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(client *relay.Client, renderer *render.Renderer, sm *scs.SessionManager) *HomeHandler {
	return &HomeHandler{client: client, renderer: renderer, sm: sm}
}

// HomeData is everything the dashboard template can show. Each panel carries
// its own error string: one panel failing to load never blanks the others.
type HomeData struct {
	Regions       view.RegionSet
	CatalogAction view.CatalogAction

	Books    []model.Book
	BooksErr string

	MyRequests    []model.BorrowRequest
	MyRequestsErr string

	Requests    []model.BorrowRequest
	RequestsErr string
	PendingOnly bool

	Members    []model.Member
	MembersErr string

	Borrowings    []model.Borrowing
	BorrowingsErr string

	Accounts    []model.Account
	AccountsErr string

	IssueDate string
	DueDate   string
	Roles     []model.Role
}

// Home renders the dashboard. The visible panels follow the resolved role;
// every visible panel is loaded from the backend in parallel. Backend
// authorization failures abort the page through the central relay error
// handling, while ordinary load failures degrade to inline panel messages.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r)
	regions := view.Regions(session)
	creds := relay.CredentialsFromRequest(r)

	data := HomeData{
		Regions:       regions,
		CatalogAction: view.ActionForCatalog(session),
		PendingOnly:   r.URL.Query().Get("pending") == "1",
	}

	g, ctx := errgroup.WithContext(r.Context())

	// loadPanel runs one panel fetch. Authorization failures propagate and
	// cancel the whole page; anything else becomes the panel's inline error.
	loadPanel := func(fetch func() error, errDst *string) {
		g.Go(func() error {
			err := fetch()
			if err == nil {
				return nil
			}
			if errors.Is(err, relay.ErrUnauthorized) || errors.Is(err, relay.ErrForbidden) {
				return err
			}
			*errDst = "This section could not be loaded. Please refresh the page."
			return nil
		})
	}

	loadPanel(func() (err error) {
		data.Books, err = h.client.ListBooks(ctx, creds)
		return err
	}, &data.BooksErr)

	if regions.Has(view.RegionMemberDashboard) {
		loadPanel(func() (err error) {
			data.MyRequests, err = h.client.MyRequests(ctx, creds)
			return err
		}, &data.MyRequestsErr)
	}

	if regions.Has(view.RegionPersonnelDashboard) {
		loadPanel(func() (err error) {
			requests, err := h.client.ListRequests(ctx, creds)
			if err != nil {
				return err
			}
			if data.PendingOnly {
				requests = filterPending(requests)
			}
			data.Requests = requests
			return nil
		}, &data.RequestsErr)

		loadPanel(func() (err error) {
			data.Members, err = h.client.ListMembers(ctx, creds)
			return err
		}, &data.MembersErr)

		loadPanel(func() (err error) {
			data.Borrowings, err = h.client.ListBorrowings(ctx, creds)
			return err
		}, &data.BorrowingsErr)

		now := time.Now()
		data.IssueDate = now.Format("2006-01-02")
		data.DueDate = now.AddDate(0, 0, loanPeriodDays).Format("2006-01-02")
	}

	if regions.Has(view.RegionAdminDashboard) {
		loadPanel(func() (err error) {
			data.Accounts, err = h.client.ListAccounts(ctx, creds)
			return err
		}, &data.AccountsErr)
		data.Roles = []model.Role{model.RoleMember, model.RolePersonnel, model.RoleAdmin}
	}

	if err := g.Wait(); err != nil {
		handleRelayError(w, r, h.renderer, h.sm, err, RouteRoot)
		return
	}

	if err := h.renderer.Render(w, r, "home", render.TemplateData{
		Title:   "Library",
		Session: session,
		Data:    data,
	}); err != nil {
		logAndInternalError(w, "failed to render home", "error", err)
	}
}

// filterPending keeps only requests still awaiting a decision.
func filterPending(requests []model.BorrowRequest) []model.BorrowRequest {
	var pending []model.BorrowRequest
	for _, req := range requests {
		if req.Status == model.RequestPending {
			pending = append(pending, req)
		}
	}
	return pending
}
