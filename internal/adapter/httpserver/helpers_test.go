package httpserver

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/guillermoBallester/clerksync/internal/adapter/signature"
	"github.com/guillermoBallester/clerksync/internal/core/port"
	"github.com/guillermoBallester/clerksync/internal/core/service"
)

// Svix uses a whsec_ prefixed base64-encoded secret.
const testWebhookSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- in-memory UserRepository ---

type memUserRepo struct {
	mu          sync.Mutex
	users       map[string]port.UserRecord
	createCalls int
	createErr   error
	getErr      error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]port.UserRecord)}
}

func (m *memUserRepo) CreateUser(_ context.Context, u port.UserRecord) (*port.UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	if _, ok := m.users[u.ID]; ok {
		return nil, port.ErrUserExists
	}
	u.CreatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m.users[u.ID] = u
	return &u, nil
}

func (m *memUserRepo) GetUserByID(_ context.Context, id string) (*port.UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.users[id]
	if !ok {
		return nil, port.ErrUserNotFound
	}
	return &u, nil
}

// --- fake Clerk session + roles ---

type fakeClerk struct {
	tokens  map[string]string // token -> user id
	roles   map[string]string // user id -> role
	roleErr error
}

func (f *fakeClerk) VerifySession(_ context.Context, token string) (string, error) {
	id, ok := f.tokens[token]
	if !ok {
		return "", errors.New("invalid token")
	}
	return id, nil
}

func (f *fakeClerk) UserRole(_ context.Context, userID string) (string, error) {
	if f.roleErr != nil {
		return "", f.roleErr
	}
	return f.roles[userID], nil
}

func newFakeClerk() *fakeClerk {
	return &fakeClerk{
		tokens: map[string]string{"tok_admin": "user_admin", "tok_member": "user_member"},
		roles:  map[string]string{"user_admin": "admin", "user_member": ""},
	}
}

// --- pinger ---

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type testServerOpts struct {
	gate      bool
	clerk     *fakeClerk
	rateLimit float64
	db        Pinger
}

func newTestServer(t *testing.T, repo *memUserRepo, opts testServerOpts) *Server {
	t.Helper()
	logger := discardLogger()

	verifier, err := signature.NewSvixVerifier(testWebhookSecret)
	require.NoError(t, err)
	svc := service.NewWebhookService(verifier, service.NewUserProvisioner(repo, logger), logger)

	var gate *RouteGate
	if opts.gate {
		c := opts.clerk
		if c == nil {
			c = newFakeClerk()
		}
		gate = NewRouteGate(c, c, logger)
	}
	if opts.rateLimit == 0 {
		opts.rateLimit = 6000
	}
	if opts.db == nil {
		opts.db = fakePinger{}
	}

	return New(Config{ListenAddr: ":0", WebhookRateLimit: opts.rateLimit},
		NewWebhookHandler(svc, logger), gate, repo, opts.db, logger)
}

// signPayload creates valid Svix signature headers for a given body.
func signPayload(t *testing.T, body []byte) http.Header {
	t.Helper()
	secretBytes, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(testWebhookSecret, "whsec_"))
	require.NoError(t, err)

	msgID := "msg_" + uuid.NewString()
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	toSign := fmt.Sprintf("%s.%s.%s", msgID, timestamp, string(body))

	mac := hmac.New(sha256.New, secretBytes)
	mac.Write([]byte(toSign))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	h := http.Header{}
	h.Set("svix-id", msgID)
	h.Set("svix-timestamp", timestamp)
	h.Set("svix-signature", "v1,"+sig)
	return h
}
