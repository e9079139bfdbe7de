package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v74"
	"gorm.io/gorm"

	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/orders"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/users"
	"github.com/zjy19901124/rallyroo-rc-store/internal/shared/money"
)

// ReconcileService turns verified payment processor events into order ledger
// rows. Deliveries are at-least-once and unordered, so every path here has
// to converge under redelivery.
type ReconcileService struct {
	repo   *orders.Repo
	users  *users.Repo
	stripe Client
	logger *slog.Logger
}

func NewReconcileService(db *gorm.DB, stripe Client) *ReconcileService {
	return &ReconcileService{
		repo:   orders.NewRepo(db),
		users:  users.NewRepo(db),
		stripe: stripe,
		logger: slog.Default(),
	}
}

func (s *ReconcileService) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Result is the acknowledgment body returned to the processor.
type Result struct {
	Received bool   `json:"received"`
	Message  string `json:"message,omitempty"`
}

func (s *ReconcileService) Process(ctx context.Context, event stripe.Event) (Result, error) {
	switch event.Type {
	case "checkout.session.completed", "payment_intent.succeeded":
		return s.recordPayment(ctx, event)
	case "charge.refunded":
		return s.recordRefund(ctx, event), nil
	default:
		// Unhandled types still get a 2xx so the processor stops retrying.
		return Result{Received: true}, nil
	}
}

func (s *ReconcileService) recordPayment(ctx context.Context, event stripe.Event) (Result, error) {
	var (
		p   PaidPayment
		err error
	)
	if event.Type == "checkout.session.completed" {
		p, err = s.extractCheckoutSession(ctx, event.Data.Raw)
	} else {
		p, err = s.extractPaymentIntent(ctx, event.Data.Raw)
	}
	if err != nil {
		return Result{}, err
	}

	if p.Email == "" {
		// Email is the only correlation key to an account and the only way
		// to reach the customer; an order without one is not actionable.
		s.logger.InfoContext(ctx, "no customer email on payment event, skipping order",
			"event_type", string(event.Type), "payment_intent_id", p.PaymentIntentID)
		return Result{Received: true, Message: "No customer email, skipping"}, nil
	}

	existing, err := s.repo.FindByPaymentIntent(ctx, p.PaymentIntentID)
	if err != nil {
		return Result{}, err
	}
	if existing != nil {
		s.logger.InfoContext(ctx, "order already exists for payment intent",
			"payment_intent_id", p.PaymentIntentID)
		return Result{Received: true, Message: "Order already exists"}, nil
	}

	// Best-effort account linking; no match leaves a guest order.
	var userID *string
	if u, uerr := s.users.FindByEmail(ctx, p.Email); uerr != nil {
		s.logger.WarnContext(ctx, "account lookup failed, creating guest order", "err", uerr)
	} else if u != nil {
		userID = &u.ID
	}

	o, err := newOrder(p, userID)
	if err != nil {
		return Result{}, err
	}

	if err := s.repo.Create(ctx, o); err != nil {
		if isDup(err) {
			// A concurrent delivery won the insert; same outcome as the
			// pre-check, the unique index just closed the race.
			s.logger.InfoContext(ctx, "duplicate order insert suppressed",
				"payment_intent_id", p.PaymentIntentID)
			return Result{Received: true, Message: "Order already exists"}, nil
		}
		return Result{}, fmt.Errorf("%w: %v", ErrOrderWrite, err)
	}

	s.logger.InfoContext(ctx, "order created",
		"order_id", o.ID, "customer_email", p.Email, "guest", userID == nil,
		"amount", money.FormatMinor(o.Currency, o.AmountTotal))
	return Result{Received: true}, nil
}

func (s *ReconcileService) recordRefund(ctx context.Context, event stripe.Event) Result {
	var ch stripe.Charge
	if err := json.Unmarshal(event.Data.Raw, &ch); err != nil {
		s.logger.ErrorContext(ctx, "failed to decode refunded charge", "err", err)
		return Result{Received: true}
	}

	piID := paymentIntentID(ch.PaymentIntent)
	if piID == "" {
		return Result{Received: true}
	}

	// A failed update is logged but still acknowledged: the processor
	// considers the refund handled, and a 500 here would only trigger
	// redelivery storms. A missed flag is recoverable by event replay.
	rows, err := s.repo.MarkRefundedByPaymentIntent(ctx, piID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to mark order refunded",
			"payment_intent_id", piID, "err", err)
		return Result{Received: true}
	}
	if rows == 0 {
		s.logger.InfoContext(ctx, "refund for unknown payment intent ignored",
			"payment_intent_id", piID)
	} else {
		s.logger.InfoContext(ctx, "order marked refunded", "payment_intent_id", piID)
	}
	return Result{Received: true}
}

func newOrder(p PaidPayment, userID *string) (*orders.Order, error) {
	items := p.Items
	if items == nil {
		items = []orders.Item{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	o := &orders.Order{
		ID:                      uuid.NewString(),
		UserID:                  userID,
		CustomerEmail:           p.Email,
		StripeCheckoutSessionID: nilIfEmpty(p.CheckoutSessionID),
		StripePaymentLinkID:     nilIfEmpty(p.PaymentLinkID),
		StripePaymentIntentID:   p.PaymentIntentID,
		AmountTotal:             p.AmountTotal,
		Currency:                p.Currency,
		Status:                  orders.StatusPaid,
		Items:                   itemsJSON,
		CreatedAt:               time.Now(),
	}
	if p.Shipping != nil {
		b, err := json.Marshal(p.Shipping)
		if err != nil {
			return nil, err
		}
		o.Shipping = b
	}
	return o, nil
}

func isDup(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
