package models

import (
	"time"

	"gorm.io/gorm"
)

// Account is a portal login (producer, finance or readonly staff).
// Accounts are provisioned by administrators; there is no public
// registration.
type Account struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	Name               string         `gorm:"default:''" json:"name"`
	Role               string         `gorm:"index;not null;default:'producer'" json:"role"`
	Status             string         `gorm:"default:'active'" json:"status"`
	IsSuper            bool           `gorm:"not null;default:false;index" json:"is_super"`
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`
	UserMetadata       JSON           `gorm:"type:json" json:"user_metadata"`
	EmailConfirmedAt   *time.Time     `json:"email_confirmed_at"`
	LastLoginAt        *time.Time     `json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Account) TableName() string {
	return "accounts"
}
