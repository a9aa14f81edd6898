package port

// SignatureHeaders are the three headers a signed webhook delivery carries.
type SignatureHeaders struct {
	ID        string
	Timestamp string
	Signature string
}

// Complete reports whether all three headers are present.
func (h SignatureHeaders) Complete() bool {
	return h.ID != "" && h.Timestamp != "" && h.Signature != ""
}

// SignatureVerifier checks a webhook body against its signature headers.
// body must be the raw bytes as received, never a re-encoded copy.
type SignatureVerifier interface {
	Verify(body []byte, headers SignatureHeaders) error
}
