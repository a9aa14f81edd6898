package service

import (
	"context"
	"log/slog"

	"github.com/guillermoBallester/clerksync/internal/clerk"
	"github.com/guillermoBallester/clerksync/internal/core/domain"
	"github.com/guillermoBallester/clerksync/internal/core/port"
)

// WebhookService takes a signed delivery from headers to a terminal outcome:
// header check, signature verification, decoding, dispatch by event kind.
type WebhookService struct {
	verifier    port.SignatureVerifier
	provisioner *UserProvisioner
	logger      *slog.Logger
}

// NewWebhookService creates a new WebhookService.
func NewWebhookService(verifier port.SignatureVerifier, provisioner *UserProvisioner, logger *slog.Logger) *WebhookService {
	return &WebhookService{
		verifier:    verifier,
		provisioner: provisioner,
		logger:      logger,
	}
}

// CheckHeaders fails with KindMissingSignatureHeaders unless all three
// signature headers are present. Callers run it before reading the body.
func (s *WebhookService) CheckHeaders(headers port.SignatureHeaders) error {
	if !headers.Complete() {
		s.logger.Warn("webhook rejected",
			slog.String("error_kind", domain.KindMissingSignatureHeaders.String()),
			slog.Bool("has_id", headers.ID != ""),
			slog.Bool("has_timestamp", headers.Timestamp != ""),
			slog.Bool("has_signature", headers.Signature != ""),
		)
		return domain.NewError(domain.KindMissingSignatureHeaders, nil)
	}
	return nil
}

// Handle processes one delivery. body must be the raw request body.
func (s *WebhookService) Handle(ctx context.Context, headers port.SignatureHeaders, body []byte) (domain.Outcome, error) {
	if err := s.CheckHeaders(headers); err != nil {
		return 0, err
	}

	if err := s.verifier.Verify(body, headers); err != nil {
		s.logger.Warn("webhook signature verification failed",
			slog.String("error_kind", domain.KindInvalidSignature.String()),
			slog.String("svix_id", headers.ID),
			slog.String("error", err.Error()),
		)
		return 0, domain.NewError(domain.KindInvalidSignature, err)
	}

	event, err := clerk.DecodeEvent(body)
	if err != nil {
		s.logger.Warn("verified webhook has invalid body",
			slog.String("svix_id", headers.ID),
			slog.String("error", err.Error()),
		)
		return 0, domain.NewError(domain.KindInvalidPayload, err)
	}

	s.logger.Info("clerk webhook received",
		slog.String("type", event.Type),
		slog.String("svix_id", headers.ID),
	)

	return s.dispatch(ctx, event)
}

func (s *WebhookService) dispatch(ctx context.Context, event clerk.WebhookEvent) (domain.Outcome, error) {
	switch event.Kind() {
	case clerk.EventUserCreated:
		return s.handleUserCreated(ctx, event)
	default:
		s.logger.Debug("ignoring unhandled webhook event", slog.String("type", event.Type))
		return domain.OutcomeIgnored, nil
	}
}

func (s *WebhookService) handleUserCreated(ctx context.Context, event clerk.WebhookEvent) (domain.Outcome, error) {
	d, err := clerk.DecodeUserCreated(event.Data)
	if err != nil {
		s.logger.Warn("invalid user.created payload", slog.String("error", err.Error()))
		return 0, domain.NewError(domain.KindInvalidPayload, err)
	}

	if _, err := s.provisioner.Provision(ctx, d); err != nil {
		s.logger.Error("failed to handle user.created",
			slog.String("error_kind", domain.KindOf(err).String()),
			slog.String("user_id", d.ID),
			slog.String("error", err.Error()),
		)
		return 0, err
	}

	return domain.OutcomeProvisioned, nil
}
