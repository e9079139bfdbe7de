package settings

import (
	"context"
	"fmt"
	"testing"

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
	require.NoError(t, db.AutoMigrate(&SiteSettings{}))
	return NewRepo(db)
}

func TestGetCreatesDefaultsOnFirstRead(t *testing.T) {
	r := newTestRepo(t)

	s, err := r.Get(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 14.95, s.ShippingFlatRateAUD, 0.001)
	assert.InDelta(t, 300, s.FreeShippingThresholdAUD, 0.001)
	assert.NotEmpty(t, s.DispatchTimeText)
	assert.NotEmpty(t, s.SupportEmail)

	again, err := r.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, s.ID, again.ID, "the defaults row is created once")
}

func TestUpdatePersistsChanges(t *testing.T) {
	r := newTestRepo(t)

	s, err := r.Get(context.Background())
	require.NoError(t, err)

	s.ShippingFlatRateAUD = 9.95
	s.FreeShippingThresholdAUD = 0
	s.SupportEmail = "help@rallyroo.com.au"
	require.NoError(t, r.Update(context.Background(), &s))

	got, err := r.Get(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 9.95, got.ShippingFlatRateAUD, 0.001)
	assert.Zero(t, got.FreeShippingThresholdAUD)
	assert.Equal(t, "help@rallyroo.com.au", got.SupportEmail)
}
