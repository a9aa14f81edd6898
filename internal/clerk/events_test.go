package clerk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventKind(t *testing.T) {
	assert.Equal(t, EventUserCreated, ParseEventKind("user.created"))
	assert.Equal(t, EventUnknown, ParseEventKind("payment.updated"))
	assert.Equal(t, EventUnknown, ParseEventKind("USER.CREATED"))
	assert.Equal(t, EventUnknown, ParseEventKind(""))
}

func TestPrimaryEmail_Found(t *testing.T) {
	d := UserCreatedData{
		ID: "u1",
		EmailAddresses: []EmailAddress{
			{ID: "e0", EmailAddress: "old@x.com"},
			{ID: "e1", EmailAddress: "a@x.com"},
		},
		PrimaryEmailAddressID: "e1",
	}

	email, ok := d.PrimaryEmail()
	require.True(t, ok)
	assert.Equal(t, "a@x.com", email)
}

func TestPrimaryEmail_FirstMatchWins(t *testing.T) {
	d := UserCreatedData{
		EmailAddresses: []EmailAddress{
			{ID: "e1", EmailAddress: "first@x.com"},
			{ID: "e1", EmailAddress: "second@x.com"},
		},
		PrimaryEmailAddressID: "e1",
	}

	email, ok := d.PrimaryEmail()
	require.True(t, ok)
	assert.Equal(t, "first@x.com", email)
}

func TestPrimaryEmail_NoMatch(t *testing.T) {
	d := UserCreatedData{
		EmailAddresses:        []EmailAddress{{ID: "e1", EmailAddress: "a@x.com"}},
		PrimaryEmailAddressID: "e2",
	}

	_, ok := d.PrimaryEmail()
	assert.False(t, ok)
}

func TestPrimaryEmail_EmptyPrimaryID(t *testing.T) {
	d := UserCreatedData{
		EmailAddresses: []EmailAddress{{ID: "", EmailAddress: "a@x.com"}},
	}

	_, ok := d.PrimaryEmail()
	assert.False(t, ok)
}

func TestDecodeEvent(t *testing.T) {
	body := []byte(`{"type":"user.created","data":{"id":"u1"},"object":"event"}`)

	event, err := DecodeEvent(body)
	require.NoError(t, err)
	assert.Equal(t, "user.created", event.Type)
	assert.Equal(t, EventUserCreated, event.Kind())
	assert.JSONEq(t, `{"id":"u1"}`, string(event.Data))
}

func TestDecodeEvent_InvalidJSON(t *testing.T) {
	_, err := DecodeEvent([]byte(`not valid json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal event")
}

func TestDecodeEvent_MissingType(t *testing.T) {
	for _, body := range []string{`{"data":{}}`, `{"type":"","data":{}}`} {
		event, err := DecodeEvent([]byte(body))
		require.NoError(t, err, body)
		assert.Equal(t, EventUnknown, event.Kind(), body)
	}
}

func TestDecodeUserCreated(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "user_2abc",
		"email_addresses": [{"id": "idn_1", "email_address": "a@x.com", "verification": null}],
		"primary_email_address_id": "idn_1",
		"first_name": "Ada"
	}`)

	d, err := DecodeUserCreated(raw)
	require.NoError(t, err)
	assert.Equal(t, "user_2abc", d.ID)
	assert.Equal(t, "idn_1", d.PrimaryEmailAddressID)
	require.Len(t, d.EmailAddresses, 1)
	assert.Equal(t, "a@x.com", d.EmailAddresses[0].EmailAddress)
}

func TestDecodeUserCreated_MissingID(t *testing.T) {
	_, err := DecodeUserCreated(json.RawMessage(`{"email_addresses":[]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate user data")
}
