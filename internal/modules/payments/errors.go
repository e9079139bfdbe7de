package payments

import "errors"

// ErrOrderWrite marks a persistence failure while inserting a new order.
// The webhook endpoint maps it to a 500 so the processor redelivers; the
// retry is safe because creation is idempotent on the payment intent id.
var ErrOrderWrite = errors.New("order write failed")
