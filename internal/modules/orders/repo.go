package orders

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// DB returns the underlying database connection for direct queries.
func (r *Repo) DB() *gorm.DB { return r.db }

// FindByPaymentIntent returns the order correlated to a processor payment
// intent id, or (nil, nil) when none exists.
func (r *Repo) FindByPaymentIntent(ctx context.Context, paymentIntentID string) (*Order, error) {
	var o Order
	err := r.db.WithContext(ctx).First(&o, "stripe_payment_intent_id = ?", paymentIntentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) Create(ctx context.Context, o *Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// MarkRefundedByPaymentIntent flips the matching order to refunded. Zero rows
// affected is not an error: the refund may reference an order this system
// never created, or arrive before creation has run.
func (r *Repo) MarkRefundedByPaymentIntent(ctx context.Context, paymentIntentID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Order{}).
		Where("stripe_payment_intent_id = ?", paymentIntentID).
		Update("status", StatusRefunded)
	return res.RowsAffected, res.Error
}

// ListForUser returns the customer's orders newest first: rows linked to the
// account plus guest orders placed with the same email before the account
// existed.
func (r *Repo) ListForUser(ctx context.Context, userID, email string) ([]Order, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var out []Order
	q := r.db.WithContext(ctx).Model(&Order{})
	if email != "" {
		q = q.Where("user_id = ? OR (user_id IS NULL AND LOWER(customer_email) = ?)", userID, email)
	} else {
		q = q.Where("user_id = ?", userID)
	}
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *Repo) Get(ctx context.Context, id string) (Order, error) {
	var o Order
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Order{}, ErrNotFound
	}
	return o, err
}

type ListParams struct {
	Page     int
	PageSize int
	Status   string // optional filter
}

type ListResult struct {
	Items []Order
	Total int64
}

// List pages through all orders for the admin screen.
func (r *Repo) List(ctx context.Context, in ListParams) (ListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}

	q := r.db.WithContext(ctx).Model(&Order{})
	if s := strings.TrimSpace(in.Status); s != "" {
		q = q.Where("status = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	var items []Order
	if err := q.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&items).Error; err != nil {
		return ListResult{}, err
	}

	return ListResult{Items: items, Total: total}, nil
}

// UpdateStatus applies an admin status override with an optimistic guard on
// the current status.
func (r *Repo) UpdateStatus(ctx context.Context, id, from, to string) error {
	if !validTransition(from, to) {
		return ErrInvalidTransition
	}
	res := r.db.WithContext(ctx).
		Model(&Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func validTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusPaid || to == StatusCancelled
	case StatusPaid:
		return to == StatusRefunded || to == StatusCancelled
	default:
		return false
	}
}
