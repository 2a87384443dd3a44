package relay

import (
	"context"
	"fmt"

	"github.com/Yigit-Sert/library-portal/internal/model"
)

// Backend endpoint paths.
const (
	pathMe         = "/api/users/me"
	pathBooks      = "/api/books"
	pathMembers    = "/api/members"
	pathRequests   = "/api/requests"
	pathMyRequests = "/api/requests/my-requests"
	pathBorrowings = "/api/borrowings"
	pathIssue      = "/api/borrowings/issue"
	pathAccounts   = "/api/admin/users"
	pathPicture    = "/api/users/profile/picture"
	pathLogout     = "/logout"

	// PathOAuthLogin is the backend's full-page Google login navigation. It
	// is never relayed: handlers redirect the browser to it directly.
	PathOAuthLogin = "/oauth2/authorization/google"
)

// Me resolves the current session from the backend identity endpoint.
// Callers treat any error, including ErrUnauthorized, as "no session".
func (c *Client) Me(ctx context.Context, creds Credentials) (*model.Session, error) {
	var s model.Session
	if err := c.GetJSON(ctx, creds, pathMe, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListBooks fetches the catalog.
func (c *Client) ListBooks(ctx context.Context, creds Credentials) ([]model.Book, error) {
	var books []model.Book
	if err := c.GetJSON(ctx, creds, pathBooks, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook fetches a single book for the edit form.
func (c *Client) GetBook(ctx context.Context, creds Credentials, id int64) (model.Book, error) {
	var book model.Book
	err := c.GetJSON(ctx, creds, fmt.Sprintf("%s/%d", pathBooks, id), &book)
	return book, err
}

// CreateBook relays a new catalog entry.
func (c *Client) CreateBook(ctx context.Context, creds Credentials, title, publisher string) error {
	return c.PostJSON(ctx, creds, pathBooks, map[string]string{
		"title":     title,
		"publisher": publisher,
	})
}

// UpdateBook relays an edit of an existing book.
func (c *Client) UpdateBook(ctx context.Context, creds Credentials, id int64, title, publisher string) error {
	return c.PutJSON(ctx, creds, fmt.Sprintf("%s/%d", pathBooks, id), map[string]string{
		"title":     title,
		"publisher": publisher,
	})
}

// DeleteBook relays a catalog deletion.
func (c *Client) DeleteBook(ctx context.Context, creds Credentials, id int64) error {
	return c.Delete(ctx, creds, fmt.Sprintf("%s/%d", pathBooks, id))
}

// ListMembers fetches all registered members.
func (c *Client) ListMembers(ctx context.Context, creds Credentials) ([]model.Member, error) {
	var members []model.Member
	if err := c.GetJSON(ctx, creds, pathMembers, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// GetMember fetches a single member for the edit form.
func (c *Client) GetMember(ctx context.Context, creds Credentials, id int64) (model.Member, error) {
	var member model.Member
	err := c.GetJSON(ctx, creds, fmt.Sprintf("%s/%d", pathMembers, id), &member)
	return member, err
}

// CreateMember relays a new member registration.
func (c *Client) CreateMember(ctx context.Context, creds Credentials, name, address, telephone string) error {
	return c.PostJSON(ctx, creds, pathMembers, map[string]string{
		"name":      name,
		"address":   address,
		"telephone": telephone,
	})
}

// UpdateMember relays an edit of an existing member.
func (c *Client) UpdateMember(ctx context.Context, creds Credentials, id int64, name, address, telephone string) error {
	return c.PutJSON(ctx, creds, fmt.Sprintf("%s/%d", pathMembers, id), map[string]string{
		"name":      name,
		"address":   address,
		"telephone": telephone,
	})
}

// DeleteMember relays a member deletion.
func (c *Client) DeleteMember(ctx context.Context, creds Credentials, id int64) error {
	return c.Delete(ctx, creds, fmt.Sprintf("%s/%d", pathMembers, id))
}

// ListRequests fetches all borrow requests (personnel view).
func (c *Client) ListRequests(ctx context.Context, creds Credentials) ([]model.BorrowRequest, error) {
	var requests []model.BorrowRequest
	if err := c.GetJSON(ctx, creds, pathRequests, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// MyRequests fetches the calling member's own borrow requests.
func (c *Client) MyRequests(ctx context.Context, creds Credentials) ([]model.BorrowRequest, error) {
	var requests []model.BorrowRequest
	if err := c.GetJSON(ctx, creds, pathMyRequests, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// RequestBook relays a member's borrow request for a book.
func (c *Client) RequestBook(ctx context.Context, creds Credentials, bookID int64) error {
	return c.PostJSON(ctx, creds, pathRequests, map[string]int64{"bookId": bookID})
}

// ApproveRequest relays request approval; the backend creates the borrowing.
func (c *Client) ApproveRequest(ctx context.Context, creds Credentials, id int64) error {
	return c.Put(ctx, creds, fmt.Sprintf("%s/%d/approve", pathRequests, id))
}

// RejectRequest relays request rejection.
func (c *Client) RejectRequest(ctx context.Context, creds Credentials, id int64) error {
	return c.Put(ctx, creds, fmt.Sprintf("%s/%d/reject", pathRequests, id))
}

// ListBorrowings fetches all loan records.
func (c *Client) ListBorrowings(ctx context.Context, creds Credentials) ([]model.Borrowing, error) {
	var borrowings []model.Borrowing
	if err := c.GetJSON(ctx, creds, pathBorrowings, &borrowings); err != nil {
		return nil, err
	}
	return borrowings, nil
}

// IssueBook relays a direct loan issue to a member.
func (c *Client) IssueBook(ctx context.Context, creds Credentials, memberID, bookID int64, issueDate, dueDate string) error {
	return c.PostJSON(ctx, creds, pathIssue, map[string]any{
		"memberId":  memberID,
		"bookId":    bookID,
		"issueDate": issueDate,
		"dueDate":   dueDate,
	})
}

// ReturnBook relays marking a borrowing as returned.
func (c *Client) ReturnBook(ctx context.Context, creds Credentials, id int64) error {
	return c.Put(ctx, creds, fmt.Sprintf("%s/%d/return", pathBorrowings, id))
}

// ListAccounts fetches all backend user accounts (admin view).
func (c *Client) ListAccounts(ctx context.Context, creds Credentials) ([]model.Account, error) {
	var accounts []model.Account
	if err := c.GetJSON(ctx, creds, pathAccounts, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// ChangeRole relays an account role change, keyed by email.
func (c *Client) ChangeRole(ctx context.Context, creds Credentials, email string, role model.Role) error {
	return c.PutJSON(ctx, creds, fmt.Sprintf("%s/%s/role", pathAccounts, email), map[string]string{
		"role": string(role),
	})
}

// UploadProfilePicture relays a profile picture as multipart form data.
func (c *Client) UploadProfilePicture(ctx context.Context, creds Credentials, filename string, data []byte) error {
	return c.PostFile(ctx, creds, pathPicture, "file", filename, data)
}

// Logout relays the backend logout, invalidating the caller's credentials.
func (c *Client) Logout(ctx context.Context, creds Credentials) error {
	return c.Post(ctx, creds, pathLogout)
}
