package orders

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusRefunded  = "refunded"
	StatusCancelled = "cancelled"
)

// Order is the payment ledger row. Created exactly once by the webhook
// reconciliation path; after that only the status field moves (paid ->
// refunded, or an admin override). The unique index on the payment intent id
// is what makes redelivered events safe.
type Order struct {
	ID            string  `gorm:"type:char(36);primaryKey" json:"id"`
	UserID        *string `gorm:"type:char(36);index:ix_orders_user_id" json:"user_id"`
	CustomerEmail string  `gorm:"type:varchar(255);not null;index:ix_orders_customer_email" json:"customer_email"`

	StripeCheckoutSessionID *string `gorm:"type:varchar(255)" json:"stripe_checkout_session_id"`
	StripePaymentLinkID     *string `gorm:"type:varchar(255)" json:"stripe_payment_link_id"`
	StripePaymentIntentID   string  `gorm:"type:varchar(255);uniqueIndex:ux_orders_payment_intent" json:"stripe_payment_intent_id"`

	AmountTotal int64  `gorm:"not null" json:"amount_total"` // minor units
	Currency    string `gorm:"type:char(3);not null;default:aud" json:"currency"`
	Status      string `gorm:"type:varchar(16);not null;default:pending" json:"status"`

	Items    datatypes.JSON `gorm:"type:json;not null" json:"items"`
	Shipping datatypes.JSON `gorm:"type:json" json:"shipping"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Order) TableName() string { return "orders" }

// Item is one line of an order. Price is the per-unit amount in major
// currency units (dollars), unlike the order's minor-unit amount_total; the
// storefront renders price as-is, so the split convention stays.
type Item struct {
	Name     string  `json:"name"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
}

type ShippingAddress struct {
	Name         string `json:"name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	Suburb       string `json:"suburb"`
	State        string `json:"state"`
	Postcode     string `json:"postcode"`
	Phone        string `json:"phone,omitempty"`
}

// DecodedItems unmarshals the JSON items column; a malformed column yields an
// empty slice rather than an error.
func (o Order) DecodedItems() []Item {
	var items []Item
	if len(o.Items) > 0 {
		_ = json.Unmarshal(o.Items, &items)
	}
	return items
}
