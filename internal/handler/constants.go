package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the landing page.
	RouteRoot = "/"
	// RouteLogin starts the backend sign-in flow.
	RouteLogin = "/login"
	// RouteLogout ends the backend session.
	RouteLogout = "/logout"
	// RouteForbidden is the access-denied page.
	RouteForbidden = "/forbidden"
	// RouteHealth is the liveness endpoint.
	RouteHealth = "/health"
	// RouteProfile is the signed-in user's profile page.
	RouteProfile = "/profile"
	// RouteHelp is the help guide index.
	RouteHelp = "/help"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteParamSlug is the slug parameter pattern.
	RouteParamSlug = "/{slug}"

	// RouteRequests is the member borrow-request route.
	RouteRequests = "/requests"
	// RouteStaffBooks is the personnel book management route.
	RouteStaffBooks = "/staff/books"
	// RouteStaffMembers is the personnel member management route.
	RouteStaffMembers = "/staff/members"
	// RouteStaffRequests is the personnel request review route.
	RouteStaffRequests = "/staff/requests"
	// RouteStaffBorrowings is the personnel loan management route.
	RouteStaffBorrowings = "/staff/borrowings"
	// RouteAdminUsers is the admin account management route.
	RouteAdminUsers = "/admin/users"
	// RouteAdminEvents is the admin event log route.
	RouteAdminEvents = "/admin/events"
)

// Flash message types.
const (
	flashTypeSuccess = "success"
	flashTypeError   = "error"
	flashTypeInfo    = "info"
)
