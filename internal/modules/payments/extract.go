package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	stripe "github.com/stripe/stripe-go/v74"

	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/orders"
	"github.com/zjy19901124/rallyroo-rc-store/internal/shared/money"
)

// PaidPayment is the normalized record both completed-payment event shapes
// reduce to before the shared creation routine runs.
type PaidPayment struct {
	Email             string
	AmountTotal       int64
	Currency          string
	PaymentIntentID   string
	CheckoutSessionID string
	PaymentLinkID     string
	Items             []orders.Item
	Shipping          *orders.ShippingAddress
}

func (s *ReconcileService) extractCheckoutSession(ctx context.Context, raw json.RawMessage) (PaidPayment, error) {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		return PaidPayment{}, fmt.Errorf("decode checkout session: %w", err)
	}

	p := PaidPayment{
		AmountTotal:       sess.AmountTotal,
		Currency:          currencyOr(string(sess.Currency), "aud"),
		PaymentIntentID:   paymentIntentID(sess.PaymentIntent),
		CheckoutSessionID: sess.ID,
		PaymentLinkID:     paymentLinkID(sess.PaymentLink),
	}
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		p.Email = sess.CustomerDetails.Email
	} else {
		p.Email = sess.CustomerEmail
	}

	lines, err := s.stripe.ListLineItems(ctx, sess.ID)
	if err != nil {
		return PaidPayment{}, fmt.Errorf("list line items for session %s: %w", sess.ID, err)
	}
	for _, li := range lines {
		name := li.Description
		if name == "" {
			name = "Product"
		}
		qty := li.Quantity
		if qty <= 0 {
			qty = 1
		}
		p.Items = append(p.Items, orders.Item{
			Name:     name,
			Quantity: qty,
			Price:    money.UnitMajor(li.AmountTotal, qty),
		})
	}

	if sd := sess.ShippingDetails; sd != nil {
		ship := &orders.ShippingAddress{Name: sd.Name}
		if sd.Address != nil {
			ship.AddressLine1 = sd.Address.Line1
			ship.AddressLine2 = sd.Address.Line2
			ship.Suburb = sd.Address.City
			ship.State = sd.Address.State
			ship.Postcode = sd.Address.PostalCode
		}
		if sess.CustomerDetails != nil {
			ship.Phone = sess.CustomerDetails.Phone
		}
		p.Shipping = ship
	}

	return p, nil
}

// extractPaymentIntent covers direct payment-intent flows with no checkout
// session. Line items exist only if the intent carries them in metadata.
func (s *ReconcileService) extractPaymentIntent(ctx context.Context, raw json.RawMessage) (PaidPayment, error) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(raw, &pi); err != nil {
		return PaidPayment{}, fmt.Errorf("decode payment intent: %w", err)
	}

	p := PaidPayment{
		Email:           pi.ReceiptEmail,
		AmountTotal:     pi.Amount,
		Currency:        currencyOr(string(pi.Currency), "aud"),
		PaymentIntentID: pi.ID,
	}

	if itemsJSON := pi.Metadata["items"]; itemsJSON != "" {
		var items []orders.Item
		if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
			// Best-effort recovery; a bad metadata blob never blocks the order.
			s.logger.WarnContext(ctx, "could not parse items from payment intent metadata",
				"payment_intent_id", pi.ID, "err", err)
		} else {
			p.Items = items
		}
	}

	return p, nil
}

// paymentIntentID resolves the payment-intent reference whether it arrived
// as a bare id or an expanded object; the SDK decodes a bare id into a
// struct holding only ID, so both shapes land here.
func paymentIntentID(pi *stripe.PaymentIntent) string {
	if pi == nil {
		return ""
	}
	return pi.ID
}

func paymentLinkID(pl *stripe.PaymentLink) string {
	if pl == nil {
		return ""
	}
	return pl.ID
}

func currencyOr(c, def string) string {
	if c == "" {
		return def
	}
	return strings.ToLower(c)
}
