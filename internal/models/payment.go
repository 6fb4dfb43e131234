package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment is a payment obligation tied to an event. Status is only
// ever pending or paid; overdue is derived at read time from a
// pending payment whose due date has passed.
type Payment struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	EventID          uint           `gorm:"index;not null" json:"event_id"`
	Amount           Money          `gorm:"type:decimal(20,2);not null" json:"amount"`
	CommissionAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"commission_amount"`
	Currency         string         `gorm:"not null;default:'BRL'" json:"currency"`
	Status           string         `gorm:"index;not null;default:'pending'" json:"status"`
	DueAt            time.Time      `gorm:"index;not null" json:"due_at"`
	PaidAt           *time.Time     `gorm:"index" json:"paid_at"`
	ProofURL         string         `gorm:"type:text" json:"proof_url"`
	ProofDescription string         `gorm:"type:text" json:"proof_description"`
	ProofUploadedAt  *time.Time     `gorm:"index" json:"proof_uploaded_at"`
	ManualOverride   bool           `gorm:"not null;default:false" json:"manual_override"`
	MarkedPaidBy     string         `json:"marked_paid_by"` // email of the actor for manual settlement
	Notes            string         `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// TableName sets the table name.
func (Payment) TableName() string {
	return "payments"
}

// HasProof reports whether a proof document is attached.
func (p *Payment) HasProof() bool {
	return p.ProofURL != ""
}

// IsOverdue reports whether a pending payment is past its due date.
func (p *Payment) IsOverdue(now time.Time) bool {
	return p.Status == "pending" && now.After(p.DueAt)
}
