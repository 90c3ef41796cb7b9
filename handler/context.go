package handler

type contextKey string

// Identity established by the authentication gate for the rest of the
// request. Never stored outside the request context.
const (
	UserIDKey    contextKey = "userID"
	LoginIDKey   contextKey = "loginID"
	UserRolesKey contextKey = "userRoles"
	RequestIDKey contextKey = "requestID"
)
