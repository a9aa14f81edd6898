package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/guillermoBallester/clerksync/internal/clerk"
	"github.com/guillermoBallester/clerksync/internal/core/domain"
	"github.com/guillermoBallester/clerksync/internal/core/port"
)

// UserProvisioner creates local user records for newly created identities.
type UserProvisioner struct {
	repo   port.UserRepository
	logger *slog.Logger
}

// NewUserProvisioner creates a new UserProvisioner.
func NewUserProvisioner(repo port.UserRepository, logger *slog.Logger) *UserProvisioner {
	return &UserProvisioner{repo: repo, logger: logger}
}

// Provision makes exactly one create attempt for the user in d. It never
// retries; a duplicate id surfaces as a KindProvisioning error so the
// sender's redelivery policy decides what happens next.
func (p *UserProvisioner) Provision(ctx context.Context, d clerk.UserCreatedData) (*port.UserRecord, error) {
	email, ok := d.PrimaryEmail()
	if !ok {
		return nil, domain.NewError(domain.KindNoPrimaryEmail,
			fmt.Errorf("user %s has no email matching primary id %q", d.ID, d.PrimaryEmailAddressID))
	}

	user, err := p.repo.CreateUser(ctx, port.UserRecord{
		ID:           d.ID,
		Email:        email,
		IsSubscribed: false,
	})
	if err != nil {
		return nil, domain.NewError(domain.KindProvisioning, fmt.Errorf("create user %s: %w", d.ID, err))
	}

	p.logger.Info("user provisioned",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}
