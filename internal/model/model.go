// Package model defines the records exchanged with the library backend.
// The portal does not own these entities: every value is fetched fresh from
// the backend per page render and discarded afterwards. JSON field names
// follow the backend DTOs exactly.
package model

// Role is the backend-assigned role of an authenticated user.
type Role string

// User roles, in ascending capability order.
const (
	RoleMember    Role = "MEMBER"
	RolePersonnel Role = "PERSONNEL"
	RoleAdmin     Role = "ADMIN"
)

// ValidRoles contains all roles the backend can assign.
var ValidRoles = []Role{RoleMember, RolePersonnel, RoleAdmin}

// IsValid reports whether r is a role the backend can assign.
func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RolePersonnel, RoleAdmin:
		return true
	}
	return false
}

// Level returns a numeric level for role hierarchy checks.
// Higher level = more capability. Unknown roles have level 0.
func (r Role) Level() int {
	switch r {
	case RoleAdmin:
		return 3
	case RolePersonnel:
		return 2
	case RoleMember:
		return 1
	default:
		return 0
	}
}

// Session is the identity resolved from the backend for the current page
// load. It is set once per request and read-only thereafter; a nil *Session
// means an anonymous visitor, which is a valid state rather than an error.
type Session struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"profilePictureUrl"`
	Role      Role   `json:"role"`
}

// Book is a catalog entry.
type Book struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
}

// Member is a registered library member.
type Member struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Telephone string `json:"telephone"`
}

// Borrow request states as reported by the backend.
const (
	RequestPending  = "PENDING"
	RequestApproved = "APPROVED"
	RequestRejected = "REJECTED"
)

// BorrowRequest is a member's request to borrow a book, awaiting a
// personnel decision.
type BorrowRequest struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	UserName    string `json:"userName"`
	BookID      int64  `json:"bookId"`
	BookTitle   string `json:"bookTitle"`
	RequestDate string `json:"requestDate"`
	Status      string `json:"status"`
}

// Borrowing is an issued loan. An empty ReturnDate means the book is
// still outstanding.
type Borrowing struct {
	ID         int64  `json:"id"`
	MemberID   int64  `json:"memberId"`
	MemberName string `json:"memberName"`
	BookID     int64  `json:"bookId"`
	BookTitle  string `json:"bookTitle"`
	IssueDate  string `json:"issueDate"`
	DueDate    string `json:"dueDate"`
	ReturnDate string `json:"returnDate"`
}

// Returned reports whether the loan has been closed.
func (b Borrowing) Returned() bool {
	return b.ReturnDate != ""
}

// Account is a backend user account as shown on the admin dashboard.
type Account struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"profilePictureUrl"`
	Role      Role   `json:"role"`
}
