package clerkauth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/clerk/clerk-sdk-go/v2/user"
	"golang.org/x/sync/singleflight"
)

// roleLookupTimeout bounds a shared Backend API call, which no longer follows
// any single request's deadline.
const roleLookupTimeout = 10 * time.Second

// Client verifies Clerk session tokens and resolves user roles from the
// Clerk Backend API. It implements port.SessionVerifier and port.RoleResolver.
type Client struct {
	getUser func(ctx context.Context, id string) (*clerk.User, error)
	group   singleflight.Group
}

// New configures the Clerk SDK with the secret key and returns a Client.
func New(secretKey string) *Client {
	clerk.SetKey(secretKey)
	return &Client{getUser: user.Get}
}

// VerifySession validates a Clerk session JWT and returns its subject.
func (c *Client) VerifySession(ctx context.Context, token string) (string, error) {
	claims, err := jwt.Verify(ctx, &jwt.VerifyParams{
		Token: token,
	})
	if err != nil {
		return "", fmt.Errorf("verifying session token: %w", err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("session token has no subject")
	}
	return claims.Subject, nil
}

// UserRole returns public_metadata.role for the user. Concurrent lookups
// for the same user share one Backend API call. The shared call runs on a
// context detached from the caller that started it, so one cancelled
// request does not fail the others waiting on it.
func (c *Client) UserRole(ctx context.Context, userID string) (string, error) {
	ch := c.group.DoChan(userID, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), roleLookupTimeout)
		defer cancel()
		u, err := c.getUser(callCtx, userID)
		if err != nil {
			return "", fmt.Errorf("fetching clerk user %s: %w", userID, err)
		}
		return roleFromMetadata(u.PublicMetadata)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

type publicMetadata struct {
	Role string `json:"role"`
}

func roleFromMetadata(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var md publicMetadata
	if err := json.Unmarshal(raw, &md); err != nil {
		return "", fmt.Errorf("decoding public metadata: %w", err)
	}
	return md.Role, nil
}
