package httpserver

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/guillermoBallester/clerksync/internal/core/domain"
	"github.com/guillermoBallester/clerksync/internal/core/port"
	"github.com/guillermoBallester/clerksync/internal/core/service"
)

const maxWebhookBodyBytes = 1 << 20

// Response bodies returned to the webhook sender.
const (
	msgMissingHeaders  = "Error occurred: No SVIX HEADERS found"
	msgInvalidSig      = "Error occurred: Failed to verify webhook"
	msgInvalidJSON     = "invalid json"
	msgNoPrimaryEmail  = "No primary email found"
	msgCreateFailed    = "Error creating user"
	msgUserCreated     = "User created successfully"
	msgWebhookReceived = "Webhook received successfully"
	msgBodyTooLarge    = "request body too large"
	msgInternal        = "internal error"
)

// WebhookHandler adapts WebhookService to HTTP.
type WebhookHandler struct {
	svc    *service.WebhookService
	logger *slog.Logger
}

// NewWebhookHandler creates a new Clerk webhook handler.
func NewWebhookHandler(svc *service.WebhookService, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{svc: svc, logger: logger}
}

// HandleClerkWebhook returns an HTTP handler for POST /api/webhook/register.
func (h *WebhookHandler) HandleClerkWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		headers := port.SignatureHeaders{
			ID:        r.Header.Get("svix-id"),
			Timestamp: r.Header.Get("svix-timestamp"),
			Signature: r.Header.Get("svix-signature"),
		}
		// Reject before touching the body.
		if err := h.svc.CheckHeaders(headers); err != nil {
			h.writeError(w, err)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, msgBodyTooLarge, http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "failed to read body", http.StatusBadRequest)
			return
		}

		outcome, err := h.svc.Handle(r.Context(), headers, body)
		if err != nil {
			h.writeError(w, err)
			return
		}

		switch outcome {
		case domain.OutcomeProvisioned:
			writeText(w, http.StatusOK, msgUserCreated)
		default:
			writeText(w, http.StatusOK, msgWebhookReceived)
		}
	}
}

func (h *WebhookHandler) writeError(w http.ResponseWriter, err error) {
	status, msg := webhookErrorResponse(domain.KindOf(err))
	if status == http.StatusInternalServerError {
		h.logger.Error("unclassified webhook error", slog.String("error", err.Error()))
	}
	http.Error(w, msg, status)
}

// webhookErrorResponse maps an error kind to the status and body sent back
// to Svix. Svix redelivers on any non-2xx status.
func webhookErrorResponse(kind domain.ErrorKind) (int, string) {
	switch kind {
	case domain.KindMissingSignatureHeaders:
		return http.StatusBadRequest, msgMissingHeaders
	case domain.KindInvalidSignature:
		return http.StatusNotFound, msgInvalidSig
	case domain.KindInvalidPayload:
		return http.StatusBadRequest, msgInvalidJSON
	case domain.KindNoPrimaryEmail:
		return http.StatusBadRequest, msgNoPrimaryEmail
	case domain.KindProvisioning:
		return http.StatusBadRequest, msgCreateFailed
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}
