package models

import (
	"time"

	"gorm.io/gorm"
)

// Event is a booked show. CacheValue is the agreed artist fee
// ("cachê") that payment obligations default to.
type Event struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Title      string         `gorm:"not null" json:"title"`
	Date       time.Time      `gorm:"index;not null" json:"date"`
	Venue      string         `json:"venue"`
	City       string         `json:"city"`
	DJID       uint           `gorm:"index;not null" json:"dj_id"`
	ProducerID uint           `gorm:"index;not null" json:"producer_id"`
	CacheValue Money          `gorm:"type:decimal(20,2);not null;default:0" json:"cache_value"`
	Status     string         `gorm:"index;not null;default:'scheduled'" json:"status"`
	Notes      string         `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	DJ       *DJ      `gorm:"foreignKey:DJID" json:"dj,omitempty"`
	Producer *Account `gorm:"foreignKey:ProducerID" json:"producer,omitempty"`
}

// TableName sets the table name.
func (Event) TableName() string {
	return "events"
}
