package users

import "time"

// User mirrors the accounts held by the external identity provider. Rows are
// synced in by the auth proxy; this service only reads them.
type User struct {
	ID       string  `gorm:"type:char(36);primaryKey" json:"id"`
	Email    string  `gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email" json:"email"`
	FullName *string `gorm:"type:varchar(255)" json:"full_name,omitempty"`
	Phone    *string `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Role     string  `gorm:"type:varchar(16);not null;default:customer" json:"role"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }
