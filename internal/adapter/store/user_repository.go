package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/guillermoBallester/clerksync/internal/core/port"
)

const pgUniqueViolation = "23505"

// UserRepositoryAdapter implements port.UserRepository using sqlc-generated queries.
type UserRepositoryAdapter struct {
	queries *Queries
}

// NewUserRepository creates a new UserRepositoryAdapter.
func NewUserRepository(queries *Queries) *UserRepositoryAdapter {
	return &UserRepositoryAdapter{queries: queries}
}

// CreateUser inserts a user row. The primary key on users.id rejects a
// second insert for the same identity with port.ErrUserExists.
func (a *UserRepositoryAdapter) CreateUser(ctx context.Context, user port.UserRecord) (*port.UserRecord, error) {
	row, err := a.queries.CreateUser(ctx, CreateUserParams{
		ID:           user.ID,
		Email:        user.Email,
		IsSubscribed: user.IsSubscribed,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("inserting user %s: %w", user.ID, port.ErrUserExists)
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	return toUserRecord(row), nil
}

// GetUserByID loads a user by identity provider id.
func (a *UserRepositoryAdapter) GetUserByID(ctx context.Context, id string) (*port.UserRecord, error) {
	row, err := a.queries.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, port.ErrUserNotFound
		}
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return toUserRecord(row), nil
}

func toUserRecord(row User) *port.UserRecord {
	return &port.UserRecord{
		ID:           row.ID,
		Email:        row.Email,
		IsSubscribed: row.IsSubscribed,
		CreatedAt:    row.CreatedAt.Time,
	}
}
