package addresses

import "time"

type Address struct {
	ID     string `gorm:"type:char(36);primaryKey" json:"id"`
	UserID string `gorm:"type:char(36);not null;index:ix_addresses_user_id" json:"user_id"`

	Name         string  `gorm:"type:varchar(255);not null" json:"name"`
	AddressLine1 string  `gorm:"type:varchar(255);not null" json:"address_line1"`
	AddressLine2 *string `gorm:"type:varchar(255)" json:"address_line2"`
	Suburb       string  `gorm:"type:varchar(128);not null" json:"suburb"`
	State        string  `gorm:"type:varchar(64);not null" json:"state"`
	Postcode     string  `gorm:"type:varchar(16);not null" json:"postcode"`
	Phone        *string `gorm:"type:varchar(32)" json:"phone"`
	IsDefault    bool    `gorm:"not null;default:false" json:"is_default"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Address) TableName() string { return "addresses" }
