package domain

// Outcome is the successful terminal state of a webhook delivery.
type Outcome int

const (
	// OutcomeIgnored means the event was verified but its kind is not handled.
	OutcomeIgnored Outcome = iota + 1
	// OutcomeProvisioned means a user record was created.
	OutcomeProvisioned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeProvisioned:
		return "provisioned"
	default:
		return "unknown"
	}
}
