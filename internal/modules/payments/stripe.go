package payments

import (
	"context"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
	"github.com/stripe/stripe-go/v74/webhook"
)

// StripeClient wraps the two pieces of the Stripe SDK this service uses:
// webhook signature verification and checkout line-item listing.
type StripeClient struct {
	api           *client.API
	secretKey     string
	webhookSecret string
}

func NewStripeClient(secretKey, webhookSecret string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api, secretKey: secretKey, webhookSecret: webhookSecret}
}

// Configured reports whether both secrets were provided. The webhook handler
// refuses deliveries with a 500 when this is false.
func (c *StripeClient) Configured() bool {
	return c.secretKey != "" && c.webhookSecret != ""
}

// VerifyWebhook checks the signature header against the raw body. The body
// must not be parsed or re-serialized first; the signature covers the exact
// bytes on the wire.
func (c *StripeClient) VerifyWebhook(body []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(body, sigHeader, c.webhookSecret)
}

func (c *StripeClient) ListLineItems(ctx context.Context, checkoutSessionID string) ([]LineItem, error) {
	params := &stripe.CheckoutSessionListLineItemsParams{
		Session: stripe.String(checkoutSessionID),
	}
	params.Context = ctx

	iter := c.api.CheckoutSessions.ListLineItems(params)
	var out []LineItem
	for iter.Next() {
		li := iter.LineItem()
		out = append(out, LineItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			AmountTotal: li.AmountTotal,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
