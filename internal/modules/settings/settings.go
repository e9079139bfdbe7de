package settings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SiteSettings is a single-row table: shipping and contact values the
// storefront reads on every page.
type SiteSettings struct {
	ID string `gorm:"type:char(36);primaryKey" json:"id"`

	ShippingFlatRateAUD       float64 `gorm:"type:decimal(10,2);not null;default:14.95" json:"shipping_flat_rate_aud"`
	FreeShippingThresholdAUD  float64 `gorm:"type:decimal(10,2);not null;default:300" json:"free_shipping_threshold_aud"`
	DispatchTimeText          string  `gorm:"type:varchar(255);not null;default:'Dispatched within 1-2 business days'" json:"dispatch_time_text"`
	SupportEmail              string  `gorm:"type:varchar(255);not null;default:'support@rallyroo.com.au'" json:"support_email"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (SiteSettings) TableName() string { return "site_settings" }

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// Get returns the settings row, creating the defaults row on first read.
func (r *Repo) Get(ctx context.Context) (SiteSettings, error) {
	var s SiteSettings
	err := r.db.WithContext(ctx).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		now := time.Now()
		s = SiteSettings{
			ID:                       uuid.NewString(),
			ShippingFlatRateAUD:      14.95,
			FreeShippingThresholdAUD: 300,
			DispatchTimeText:         "Dispatched within 1-2 business days",
			SupportEmail:             "support@rallyroo.com.au",
			CreatedAt:                now,
			UpdatedAt:                now,
		}
		if cerr := r.db.WithContext(ctx).Create(&s).Error; cerr != nil {
			return SiteSettings{}, cerr
		}
		return s, nil
	}
	return s, err
}

func (r *Repo) Update(ctx context.Context, s *SiteSettings) error {
	s.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Model(&SiteSettings{}).
		Where("id = ?", s.ID).
		Select("shipping_flat_rate_aud", "free_shipping_threshold_aud", "dispatch_time_text", "support_email", "updated_at").
		Updates(s).Error
}
