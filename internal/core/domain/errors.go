package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a webhook delivery could not be processed.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindConfiguration
	KindMissingSignatureHeaders
	KindInvalidSignature
	KindInvalidPayload
	KindNoPrimaryEmail
	KindProvisioning
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindMissingSignatureHeaders:
		return "missing_signature_headers"
	case KindInvalidSignature:
		return "invalid_signature"
	case KindInvalidPayload:
		return "invalid_payload"
	case KindNoPrimaryEmail:
		return "no_primary_email"
	case KindProvisioning:
		return "provisioning"
	default:
		return "unknown"
	}
}

// WebhookError carries an ErrorKind alongside the underlying cause.
type WebhookError struct {
	Kind ErrorKind
	Err  error
}

// NewError wraps err with the given kind. err may be nil.
func NewError(kind ErrorKind, err error) *WebhookError {
	return &WebhookError{Kind: kind, Err: err}
}

func (e *WebhookError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *WebhookError) Unwrap() error {
	return e.Err
}

// Is matches any *WebhookError of the same kind, so callers can compare
// against a bare &WebhookError{Kind: ...}.
func (e *WebhookError) Is(target error) bool {
	t, ok := target.(*WebhookError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the ErrorKind carried by err, or KindUnknown.
func KindOf(err error) ErrorKind {
	var we *WebhookError
	if errors.As(err, &we) {
		return we.Kind
	}
	return KindUnknown
}
