package products

import (
	"time"

	"gorm.io/datatypes"
)

type Product struct {
	ID          string `gorm:"type:char(36);primaryKey" json:"id"`
	Slug        string `gorm:"type:varchar(255);not null;uniqueIndex:ux_products_slug" json:"slug"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
	Category    string `gorm:"type:varchar(64);not null;default:cars" json:"category"`

	PriceAUD          float64  `gorm:"type:decimal(10,2);not null" json:"price_aud"`
	CompareAtPriceAUD *float64 `gorm:"type:decimal(10,2)" json:"compare_at_price_aud"`

	SKU          *string        `gorm:"type:varchar(64)" json:"sku"`
	AgeGrade     string         `gorm:"type:varchar(32);not null;default:'14+'" json:"age_grade"`
	BatteryType  string         `gorm:"type:varchar(64);not null;default:'LiPo'" json:"battery_type"`
	WeightKG     float64        `gorm:"type:decimal(8,3);not null;default:0" json:"weight_kg"`
	DimensionsCM datatypes.JSON `gorm:"type:json" json:"dimensions_cm"`
	Features     datatypes.JSON `gorm:"type:json" json:"features"`
	Images       datatypes.JSON `gorm:"type:json" json:"images"`
	VideoURL     *string        `gorm:"type:varchar(512)" json:"video_url"`

	StockOnHand       int `gorm:"not null;default:0" json:"stock_on_hand"`
	StockReserved     int `gorm:"not null;default:0" json:"stock_reserved"`
	LowStockThreshold int `gorm:"not null;default:3" json:"low_stock_threshold"`

	StripePaymentLinkURL *string `gorm:"type:varchar(512)" json:"stripe_payment_link_url"`
	IsActive             bool    `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// StockAvailable is on-hand minus reserved, floored at zero.
func (p Product) StockAvailable() int {
	if n := p.StockOnHand - p.StockReserved; n > 0 {
		return n
	}
	return 0
}

func (p Product) LowStock() bool {
	return p.StockAvailable() <= p.LowStockThreshold
}
