package models

import (
	"time"

	"gorm.io/gorm"
)

// DJ is an artist on the agency roster.
type DJ struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Name       string         `gorm:"index;not null" json:"name"`
	ArtistName string         `gorm:"index;not null" json:"artist_name"`
	Email      string         `gorm:"index" json:"email"`
	Phone      string         `json:"phone"`
	CNPJ       string         `gorm:"index" json:"cnpj"` // billing document of the artist's company
	BaseFee    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"base_fee"`
	Genres     string         `json:"genres"`
	Active     bool           `gorm:"not null;default:true;index" json:"active"`
	Notes      string         `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (DJ) TableName() string {
	return "djs"
}
