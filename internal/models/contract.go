package models

import (
	"time"

	"gorm.io/gorm"
)

// Contract is the booking agreement between an event and a DJ.
type Contract struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	EventID   uint           `gorm:"index;not null" json:"event_id"`
	DJID      uint           `gorm:"index;not null" json:"dj_id"`
	Status    string         `gorm:"index;not null;default:'draft'" json:"status"`
	FileURL   string         `gorm:"type:text" json:"file_url"` // signed document location
	SignedAt  *time.Time     `gorm:"index" json:"signed_at"`
	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	DJ    *DJ    `gorm:"foreignKey:DJID" json:"dj,omitempty"`
}

// TableName sets the table name.
func (Contract) TableName() string {
	return "contracts"
}
