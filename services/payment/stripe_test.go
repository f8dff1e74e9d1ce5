package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"
)

const testSecret = "whsec_test_secret"

func sign(t *testing.T, payload string, secret string) string {
	t.Helper()
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    secret,
		Timestamp: time.Now(),
	})
	return signed.Header
}

func TestVerifyEventCheckoutCompleted(t *testing.T) {
	payload := `{
		"id": "evt_123",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test_abc", "object": "checkout.session", "payment_intent": "pi_456"}}
	}`
	g := NewStripeGateway(testSecret)

	evt, err := g.VerifyEvent([]byte(payload), sign(t, payload, testSecret))
	require.NoError(t, err)
	assert.Equal(t, "evt_123", evt.ID)
	assert.Equal(t, EventCheckoutCompleted, evt.Type)
	assert.Equal(t, "cs_test_abc", evt.SessionID)
	assert.Equal(t, "pi_456", evt.PaymentIntentID)
}

func TestVerifyEventOtherTypeSkipsSessionDecode(t *testing.T) {
	payload := `{"id": "evt_9", "object": "event", "type": "charge.refunded", "data": {"object": {"id": "ch_1"}}}`
	g := NewStripeGateway(testSecret)

	evt, err := g.VerifyEvent([]byte(payload), sign(t, payload, testSecret))
	require.NoError(t, err)
	assert.Equal(t, "charge.refunded", evt.Type)
	assert.Empty(t, evt.SessionID)
}

func TestVerifyEventRejectsWrongSecret(t *testing.T) {
	payload := `{"id": "evt_1", "object": "event", "type": "checkout.session.completed", "data": {"object": {}}}`
	g := NewStripeGateway(testSecret)

	_, err := g.VerifyEvent([]byte(payload), sign(t, payload, "whsec_other"))
	assert.Error(t, err)
}

func TestVerifyEventRejectsGarbageHeader(t *testing.T) {
	g := NewStripeGateway(testSecret)

	_, err := g.VerifyEvent([]byte(`{}`), "not-a-signature")
	assert.Error(t, err)
}
