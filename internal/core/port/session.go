package port

import "context"

// RoleAdmin is the role value that grants access to /admin routes.
const RoleAdmin = "admin"

// SessionVerifier validates a session token and returns the user id it
// was issued for.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (string, error)
}

// RoleResolver looks up the application role of an identity provider user.
// An empty role with a nil error means the user has no role assigned.
type RoleResolver interface {
	UserRole(ctx context.Context, userID string) (string, error)
}

// Session is the authenticated principal attached to a request.
type Session struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
