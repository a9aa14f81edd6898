package port

import "context"

type contextKey int

const sessionKey contextKey = iota

// ContextWithSession attaches a Session to the context.
func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext extracts the Session from the context.
// Returns nil if no Session is present.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey).(*Session)
	return s
}
