package httpserver

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/guillermoBallester/clerksync/internal/core/port"
)

const (
	sessionCookie = "__session"

	pathSignIn         = "/sign-in"
	pathSignUp         = "/sign-up"
	pathDashboard      = "/dashboard"
	pathAdminDashboard = "/admin/dashboard"
	pathError          = "/error"
)

// staticAsset matches framework internals and any path containing a static
// file extension. "js" followed by "on" is not matched, so .json paths stay
// gated.
var staticAsset = regexp.MustCompile(`^/(?:_next|[^?]*\.(?:html?|css|js(?:$|[^o]|o$|o[^n])|jpe?g|webp|png|gif|svg|ttf|woff2?|ico|csv|docx?|xlsx?|zip|webmanifest))`)

// alwaysGated lists path prefixes the gate inspects even when they look like
// static assets.
var alwaysGated = []string{"/api", "/trpc"}

// DefaultPublicRoutes returns the routes reachable without a session.
func DefaultPublicRoutes() []string {
	return []string{"/", WebhookPath, pathSignUp, pathSignIn}
}

// DefaultBypassPaths returns paths the gate never touches.
func DefaultBypassPaths() []string {
	return []string{"/health", "/ready"}
}

// RouteGate redirects requests based on session state and role.
type RouteGate struct {
	sessions port.SessionVerifier
	roles    port.RoleResolver
	public   map[string]bool
	bypass   map[string]bool
	logger   *slog.Logger
}

// NewRouteGate creates a RouteGate with the default public and bypass routes.
func NewRouteGate(sessions port.SessionVerifier, roles port.RoleResolver, logger *slog.Logger) *RouteGate {
	g := &RouteGate{
		sessions: sessions,
		roles:    roles,
		public:   make(map[string]bool),
		bypass:   make(map[string]bool),
		logger:   logger,
	}
	for _, p := range DefaultPublicRoutes() {
		g.public[p] = true
	}
	for _, p := range DefaultBypassPaths() {
		g.bypass[p] = true
	}
	return g
}

// Middleware applies the redirect policy. Rules run in order and the first
// match wins; requests that match none continue with the Session attached.
func (g *RouteGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if g.shouldSkip(path) {
			next.ServeHTTP(w, r)
			return
		}

		userID := g.authenticate(r)
		if userID == "" {
			if !g.public[path] {
				redirect(w, r, pathSignIn)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		role, err := g.roles.UserRole(r.Context(), userID)
		if err != nil {
			g.logger.Error("role lookup failed",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
			redirect(w, r, pathError)
			return
		}
		session := &port.Session{UserID: userID, Role: role}

		if session.IsAdmin() && path == pathDashboard {
			redirect(w, r, pathAdminDashboard)
			return
		}

		if !session.IsAdmin() && strings.HasPrefix(path, "/admin") {
			redirect(w, r, pathDashboard)
			return
		}

		if g.public[path] {
			if session.IsAdmin() {
				redirect(w, r, pathAdminDashboard)
			} else {
				redirect(w, r, pathDashboard)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(port.ContextWithSession(r.Context(), session)))
	})
}

func (g *RouteGate) shouldSkip(path string) bool {
	if g.bypass[path] {
		return true
	}
	for _, prefix := range alwaysGated {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return staticAsset.MatchString(path)
}

// authenticate returns the verified user id, or "" when the request has no
// valid session.
func (g *RouteGate) authenticate(r *http.Request) string {
	token := sessionToken(r)
	if token == "" {
		return ""
	}
	userID, err := g.sessions.VerifySession(r.Context(), token)
	if err != nil {
		g.logger.Debug("session verification failed", slog.String("error", err.Error()))
		return ""
	}
	return userID
}

func sessionToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		return c.Value
	}
	return ""
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusTemporaryRedirect)
}
