package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf_Wrapped(t *testing.T) {
	cause := errors.New("duplicate key")
	err := fmt.Errorf("handling delivery: %w", NewError(KindProvisioning, cause))

	assert.Equal(t, KindProvisioning, KindOf(err))
	assert.ErrorIs(t, err, cause)
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestWebhookError_IsMatchesKind(t *testing.T) {
	err := NewError(KindNoPrimaryEmail, errors.New("user u1"))

	assert.ErrorIs(t, err, &WebhookError{Kind: KindNoPrimaryEmail})
	assert.NotErrorIs(t, err, &WebhookError{Kind: KindProvisioning})
}

func TestWebhookError_Message(t *testing.T) {
	assert.Equal(t, "invalid_signature", NewError(KindInvalidSignature, nil).Error())
	assert.Equal(t, "invalid_signature: bad mac",
		NewError(KindInvalidSignature, errors.New("bad mac")).Error())
}

func TestErrorKind_String(t *testing.T) {
	tests := map[ErrorKind]string{
		KindConfiguration:           "configuration",
		KindMissingSignatureHeaders: "missing_signature_headers",
		KindInvalidSignature:        "invalid_signature",
		KindInvalidPayload:          "invalid_payload",
		KindNoPrimaryEmail:          "no_primary_email",
		KindProvisioning:            "provisioning",
		KindUnknown:                 "unknown",
	}
	for kind, want := range tests {
		assert.Equal(t, want, kind.String())
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "ignored", OutcomeIgnored.String())
	assert.Equal(t, "provisioned", OutcomeProvisioned.String())
	assert.Equal(t, "unknown", Outcome(0).String())
}
