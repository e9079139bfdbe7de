package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/zjy19901124/rallyroo-rc-store/internal/config"
	"github.com/zjy19901124/rallyroo-rc-store/internal/http/middleware"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/addresses"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/orders"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/payments"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/products"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/settings"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/users"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&users.User{},
		&products.Product{},
		&orders.Order{},
		&addresses.Address{},
		&settings.SiteSettings{},
		&middleware.AdminSession{},
	))

	r := NewRouter(Deps{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		DB:     db,
		Cfg: config.Config{
			AdminPassword:   "hunter2",
			CORSAllowOrigin: "*",
		},
		Stripe: payments.NewStripeClient("", ""),
	})
	return r, db
}

func doJSON(r *gin.Engine, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(r, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOrdersRequireIdentity(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(r, http.MethodGet, "/api/orders", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrdersOwnership(t *testing.T) {
	r, db := newTestRouter(t)

	userID := uuid.NewString()
	mine := orders.Order{
		ID:                    uuid.NewString(),
		UserID:                &userID,
		CustomerEmail:         "me@example.com",
		StripePaymentIntentID: "pi_mine",
		AmountTotal:           5000,
		Currency:              "aud",
		Status:                orders.StatusPaid,
		Items:                 []byte(`[]`),
		CreatedAt:             time.Now(),
	}
	theirs := orders.Order{
		ID:                    uuid.NewString(),
		CustomerEmail:         "them@example.com",
		StripePaymentIntentID: "pi_theirs",
		AmountTotal:           5000,
		Currency:              "aud",
		Status:                orders.StatusPaid,
		Items:                 []byte(`[]`),
		CreatedAt:             time.Now(),
	}
	require.NoError(t, db.Create(&mine).Error)
	require.NoError(t, db.Create(&theirs).Error)

	ident := map[string]string{
		"X-User-ID":    userID,
		"X-User-Email": "me@example.com",
	}

	w := doJSON(r, http.MethodGet, "/api/orders", nil, ident)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Orders []orders.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Orders, 1)
	assert.Equal(t, mine.ID, list.Orders[0].ID)

	w = doJSON(r, http.MethodGet, "/api/orders/"+mine.ID, nil, ident)
	assert.Equal(t, http.StatusOK, w.Code)

	// Another customer's order looks like it does not exist.
	w = doJSON(r, http.MethodGet, "/api/orders/"+theirs.ID, nil, ident)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicProductsAndSettings(t *testing.T) {
	r, db := newTestRouter(t)

	require.NoError(t, products.NewRepo(db).Create(context.Background(), &products.Product{
		Slug:     "outback-crawler",
		Name:     "Outback Crawler",
		Category: "trucks",
		PriceAUD: 399,
		IsActive: true,
	}))

	w := doJSON(r, http.MethodGet, "/api/products?category=trucks", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "outback-crawler")

	w = doJSON(r, http.MethodGet, "/api/products/outback-crawler", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/products/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/api/settings", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shipping_flat_rate_aud")
}

func TestAdminLoginAndAccess(t *testing.T) {
	r, _ := newTestRouter(t)

	// No token.
	w := doJSON(r, http.MethodGet, "/api/admin/orders", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong password.
	w = doJSON(r, http.MethodPost, "/api/admin/login", gin.H{"password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Right password issues a working token.
	w = doJSON(r, http.MethodPost, "/api/admin/login", gin.H{"password": "hunter2"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	auth := map[string]string{"Authorization": "Bearer " + login.Token}
	w = doJSON(r, http.MethodGet, "/api/admin/orders", nil, auth)
	assert.Equal(t, http.StatusOK, w.Code)

	// Garbage token.
	w = doJSON(r, http.MethodGet, "/api/admin/orders", nil,
		map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminOrderStatusUpdate(t *testing.T) {
	r, db := newTestRouter(t)

	o := orders.Order{
		ID:                    uuid.NewString(),
		CustomerEmail:         "s@example.com",
		StripePaymentIntentID: "pi_status",
		AmountTotal:           1000,
		Currency:              "aud",
		Status:                orders.StatusPaid,
		Items:                 []byte(`[]`),
		CreatedAt:             time.Now(),
	}
	require.NoError(t, db.Create(&o).Error)

	w := doJSON(r, http.MethodPost, "/api/admin/login", gin.H{"password": "hunter2"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	auth := map[string]string{"Authorization": "Bearer " + login.Token}

	w = doJSON(r, http.MethodPatch, "/api/admin/orders/"+o.ID+"/status",
		gin.H{"status": "refunded"}, auth)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got orders.Order
	require.NoError(t, db.First(&got, "id = ?", o.ID).Error)
	assert.Equal(t, orders.StatusRefunded, got.Status)

	// Refunded orders cannot move back.
	w = doJSON(r, http.MethodPatch, "/api/admin/orders/"+o.ID+"/status",
		gin.H{"status": "paid"}, auth)
	assert.Equal(t, http.StatusConflict, w.Code)
}
