package payments

import "context"

// Client is the slice of the payment processor API the reconciliation path
// consumes. The real implementation talks to Stripe; tests stub it.
type Client interface {
	ListLineItems(ctx context.Context, checkoutSessionID string) ([]LineItem, error)
}

// LineItem is one line of a hosted checkout. AmountTotal is the line total
// in minor units.
type LineItem struct {
	Description string
	Quantity    int64
	AmountTotal int64
}
