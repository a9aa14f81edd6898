package port

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUserExists is returned when a user with the same external id is
	// already stored.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
)

// UserRecord is the domain representation of a provisioned user.
// ID is the identity provider's user id.
type UserRecord struct {
	ID           string
	Email        string
	IsSubscribed bool
	CreatedAt    time.Time
}

// UserRepository persists user records. CreateUser must fail with
// ErrUserExists rather than overwrite or duplicate an existing id.
type UserRepository interface {
	CreateUser(ctx context.Context, user UserRecord) (*UserRecord, error)
	GetUserByID(ctx context.Context, id string) (*UserRecord, error)
}
