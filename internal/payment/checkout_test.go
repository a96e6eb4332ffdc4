package payment

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProvider() *Provider {
	return NewProvider("merchant-1", "order-secret", "hook-secret", "https://pay.example.com/checkout", "USD")
}

func TestCreateSession(t *testing.T) {
	t.Parallel()

	p := testProvider()
	session := p.CreateSession("sess-1", "tour-1", "user-1", 497, "The Forest Hiker Tour", "https://app/my-tours", "https://app/tour/x")

	require.NotNil(t, session)
	assert.Equal(t, "sess-1", session.ID)
	assert.Equal(t, 497.0, session.Amount)
	assert.Equal(t, "USD", session.Currency)

	parsed, err := url.Parse(session.URL)
	require.NoError(t, err)
	assert.Equal(t, "pay.example.com", parsed.Host)

	q := parsed.Query()
	assert.Equal(t, "merchant-1", q.Get("merchant"))
	assert.Equal(t, "sess-1", q.Get("session"))
	assert.Equal(t, "tour-1", q.Get("tour"))
	assert.Equal(t, "497.00", q.Get("amount"))
	assert.NotEmpty(t, q.Get("signature"))
}

func TestVerifyWebhookRoundTrip(t *testing.T) {
	t.Parallel()

	p := testProvider()
	form := url.Values{}
	form.Set("session", "sess-1")
	form.Set("tour", "tour-1")
	form.Set("customer", "user-1")
	form.Set("amount", "497.00")
	form.Set("signature", p.SignWebhook("sess-1", "tour-1", "user-1", 497))

	event, err := p.VerifyWebhook(form)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", event.SessionID)
	assert.Equal(t, "tour-1", event.TourID)
	assert.Equal(t, "user-1", event.CustomerID)
	assert.Equal(t, 497.0, event.Amount)
}

func TestVerifyWebhookRejectsTampering(t *testing.T) {
	t.Parallel()

	p := testProvider()
	form := url.Values{}
	form.Set("session", "sess-1")
	form.Set("tour", "tour-1")
	form.Set("customer", "user-1")
	form.Set("amount", "497.00")
	form.Set("signature", p.SignWebhook("sess-1", "tour-1", "user-1", 497))

	// inflating the amount must break the signature
	form.Set("amount", "1.00")
	_, err := p.VerifyWebhook(form)
	assert.Error(t, err)
}

func TestVerifyWebhookRejectsForeignSecret(t *testing.T) {
	t.Parallel()

	other := NewProvider("merchant-1", "order-secret", "other-secret", "https://pay.example.com/checkout", "USD")

	form := url.Values{}
	form.Set("session", "sess-1")
	form.Set("tour", "tour-1")
	form.Set("customer", "user-1")
	form.Set("amount", "497.00")
	form.Set("signature", other.SignWebhook("sess-1", "tour-1", "user-1", 497))

	_, err := testProvider().VerifyWebhook(form)
	assert.Error(t, err)
}

func TestVerifyWebhookRejectsIncompletePayload(t *testing.T) {
	t.Parallel()

	p := testProvider()

	form := url.Values{}
	form.Set("session", "sess-1")
	_, err := p.VerifyWebhook(form)
	assert.Error(t, err)

	form.Set("tour", "tour-1")
	form.Set("customer", "user-1")
	form.Set("amount", "not-a-number")
	form.Set("signature", "sig")
	_, err = p.VerifyWebhook(form)
	assert.Error(t, err)
}
