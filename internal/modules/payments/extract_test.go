package payments

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCheckoutSessionDefaults(t *testing.T) {
	svc := NewReconcileService(newTestDB(t), &stubClient{lines: []LineItem{
		{Description: "", Quantity: 0, AmountTotal: 1500},
	}})

	raw, err := json.Marshal(map[string]any{
		"id":             "cs_defaults",
		"amount_total":   1500,
		"customer_email": "d@example.com",
		"payment_intent": "pi_defaults",
	})
	require.NoError(t, err)

	p, err := svc.extractCheckoutSession(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "aud", p.Currency, "missing currency falls back to aud")
	assert.Equal(t, "d@example.com", p.Email)
	assert.Nil(t, p.Shipping)

	require.Len(t, p.Items, 1)
	assert.Equal(t, "Product", p.Items[0].Name, "unnamed line gets a placeholder")
	assert.Equal(t, int64(1), p.Items[0].Quantity, "quantity floors at 1")
	assert.InDelta(t, 15.0, p.Items[0].Price, 0.0001)
}

func TestExtractCheckoutSessionPrefersCustomerDetailsEmail(t *testing.T) {
	svc := NewReconcileService(newTestDB(t), &stubClient{})

	raw, err := json.Marshal(map[string]any{
		"id":               "cs_emails",
		"currency":         "AUD",
		"customer_email":   "fallback@example.com",
		"customer_details": map[string]any{"email": "primary@example.com"},
	})
	require.NoError(t, err)

	p, err := svc.extractCheckoutSession(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "primary@example.com", p.Email)
	assert.Equal(t, "aud", p.Currency, "currency normalizes to lowercase")
}
