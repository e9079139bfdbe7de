package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Order{}))
	return NewRepo(db)
}

func seedOrder(t *testing.T, r *Repo, mutate func(*Order)) Order {
	t.Helper()
	o := Order{
		ID:                    uuid.NewString(),
		CustomerEmail:         "seed@example.com",
		StripePaymentIntentID: "pi_" + uuid.NewString(),
		AmountTotal:           10000,
		Currency:              "aud",
		Status:                StatusPaid,
		Items:                 []byte(`[]`),
		CreatedAt:             time.Now(),
	}
	if mutate != nil {
		mutate(&o)
	}
	require.NoError(t, r.Create(context.Background(), &o))
	return o
}

func TestFindByPaymentIntentMiss(t *testing.T) {
	r := newTestRepo(t)

	got, err := r.FindByPaymentIntent(context.Background(), "pi_unknown")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateDuplicatePaymentIntent(t *testing.T) {
	r := newTestRepo(t)
	first := seedOrder(t, r, nil)

	dup := first
	dup.ID = uuid.NewString()
	err := r.Create(context.Background(), &dup)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestListForUserIncludesGuestOrders(t *testing.T) {
	r := newTestRepo(t)
	userID := uuid.NewString()

	linked := seedOrder(t, r, func(o *Order) {
		o.UserID = &userID
		o.CustomerEmail = "kai@example.com"
	})
	guest := seedOrder(t, r, func(o *Order) {
		o.CustomerEmail = "Kai@Example.com" // pre-account checkout, different casing
	})
	seedOrder(t, r, func(o *Order) {
		o.CustomerEmail = "someone-else@example.com"
	})
	otherID := uuid.NewString()
	seedOrder(t, r, func(o *Order) {
		// Another account that happens to share the email never leaks in.
		o.UserID = &otherID
		o.CustomerEmail = "kai@example.com"
	})

	got, err := r.ListForUser(context.Background(), userID, "kai@example.com")
	require.NoError(t, err)
	require.Len(t, got, 2)

	ids := []string{got[0].ID, got[1].ID}
	assert.Contains(t, ids, linked.ID)
	assert.Contains(t, ids, guest.ID)
}

func TestListForUserWithoutEmail(t *testing.T) {
	r := newTestRepo(t)
	userID := uuid.NewString()
	mine := seedOrder(t, r, func(o *Order) { o.UserID = &userID })
	seedOrder(t, r, nil)

	got, err := r.ListForUser(context.Background(), userID, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)
}

func TestMarkRefundedByPaymentIntent(t *testing.T) {
	r := newTestRepo(t)
	o := seedOrder(t, r, nil)

	rows, err := r.MarkRefundedByPaymentIntent(context.Background(), o.StripePaymentIntentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	got, err := r.Get(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRefunded, got.Status)

	rows, err = r.MarkRefundedByPaymentIntent(context.Background(), "pi_missing")
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr bool
	}{
		{"pending to paid", StatusPending, StatusPaid, false},
		{"pending to cancelled", StatusPending, StatusCancelled, false},
		{"paid to refunded", StatusPaid, StatusRefunded, false},
		{"paid to cancelled", StatusPaid, StatusCancelled, false},
		{"paid back to pending", StatusPaid, StatusPending, true},
		{"refunded to paid", StatusRefunded, StatusPaid, true},
		{"cancelled to paid", StatusCancelled, StatusPaid, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRepo(t)
			o := seedOrder(t, r, func(o *Order) { o.Status = tt.from })

			err := r.UpdateStatus(context.Background(), o.ID, tt.from, tt.to)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			require.NoError(t, err)

			got, err := r.Get(context.Background(), o.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.to, got.Status)
		})
	}
}

func TestUpdateStatusStaleGuard(t *testing.T) {
	r := newTestRepo(t)
	o := seedOrder(t, r, func(o *Order) { o.Status = StatusRefunded })

	// Caller believes the order is still paid; the row moved on.
	err := r.UpdateStatus(context.Background(), o.ID, StatusPaid, StatusRefunded)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestListPagedWithStatusFilter(t *testing.T) {
	r := newTestRepo(t)
	for i := 0; i < 3; i++ {
		seedOrder(t, r, nil)
	}
	seedOrder(t, r, func(o *Order) { o.Status = StatusPending })

	res, err := r.List(context.Background(), ListParams{Page: 1, PageSize: 2, Status: StatusPaid})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
	assert.Len(t, res.Items, 2)

	res, err = r.List(context.Background(), ListParams{Page: 2, PageSize: 2, Status: StatusPaid})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
}
