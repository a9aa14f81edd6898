package signature

import (
	"fmt"
	"net/http"

	svix "github.com/svix/svix-webhooks/go"

	"github.com/guillermoBallester/clerksync/internal/core/domain"
	"github.com/guillermoBallester/clerksync/internal/core/port"
)

// SvixVerifier implements port.SignatureVerifier with the Svix webhook
// library. Timestamp tolerance and HMAC checks are the library's.
type SvixVerifier struct {
	wh *svix.Webhook
}

// NewSvixVerifier builds a verifier for the given "whsec_" signing secret.
// A malformed secret is a configuration error.
func NewSvixVerifier(secret string) (*SvixVerifier, error) {
	if secret == "" {
		return nil, domain.NewError(domain.KindConfiguration, fmt.Errorf("webhook secret is empty"))
	}
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, domain.NewError(domain.KindConfiguration, fmt.Errorf("invalid webhook secret: %w", err))
	}
	return &SvixVerifier{wh: wh}, nil
}

// Verify checks body against the signature headers.
func (v *SvixVerifier) Verify(body []byte, headers port.SignatureHeaders) error {
	h := http.Header{}
	h.Set("svix-id", headers.ID)
	h.Set("svix-timestamp", headers.Timestamp)
	h.Set("svix-signature", headers.Signature)

	if err := v.wh.Verify(body, h); err != nil {
		return fmt.Errorf("svix verify: %w", err)
	}
	return nil
}
