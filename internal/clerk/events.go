package clerk

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// EventKind is the tagged form of a webhook event type string.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventUserCreated
)

const typeUserCreated = "user.created"

// ParseEventKind maps a Clerk event type to its EventKind. Types this
// service does not handle map to EventUnknown.
func ParseEventKind(eventType string) EventKind {
	switch eventType {
	case typeUserCreated:
		return EventUserCreated
	default:
		return EventUnknown
	}
}

func (k EventKind) String() string {
	switch k {
	case EventUserCreated:
		return typeUserCreated
	default:
		return "unknown"
	}
}

// WebhookEvent represents a Clerk webhook event envelope. A missing or
// empty Type is EventUnknown, not a decode error.
type WebhookEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Kind returns the tagged kind of the event.
func (e WebhookEvent) Kind() EventKind {
	return ParseEventKind(e.Type)
}

// UserCreatedData is the payload for "user.created" events.
type UserCreatedData struct {
	ID                    string         `json:"id" validate:"required"`
	EmailAddresses        []EmailAddress `json:"email_addresses"`
	PrimaryEmailAddressID string         `json:"primary_email_address_id"`
}

// EmailAddress is a nested object within Clerk user data.
type EmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

// PrimaryEmail returns the address whose id equals PrimaryEmailAddressID,
// searching EmailAddresses in order. If several entries share that id the
// first one wins.
func (d UserCreatedData) PrimaryEmail() (string, bool) {
	if d.PrimaryEmailAddressID == "" {
		return "", false
	}
	for _, e := range d.EmailAddresses {
		if e.ID == d.PrimaryEmailAddressID {
			return e.EmailAddress, true
		}
	}
	return "", false
}

var validate = validator.New()

// DecodeEvent parses a verified webhook body into an envelope.
func DecodeEvent(body []byte) (WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return WebhookEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}

// DecodeUserCreated parses the data object of a "user.created" event.
func DecodeUserCreated(data json.RawMessage) (UserCreatedData, error) {
	var d UserCreatedData
	if err := json.Unmarshal(data, &d); err != nil {
		return UserCreatedData{}, fmt.Errorf("unmarshal user data: %w", err)
	}
	if err := validate.Struct(d); err != nil {
		return UserCreatedData{}, fmt.Errorf("validate user data: %w", err)
	}
	return d, nil
}
