package repository

import "time"

// PaymentListFilter filters the payment list.
type PaymentListFilter struct {
	Page        int
	PageSize    int
	EventID     uint
	DJID        uint
	ProducerID  uint
	Status      string
	OverdueOnly bool
	Now         time.Time // reference time for the overdue predicate
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	DueFrom     *time.Time
	DueTo       *time.Time
}

// EventListFilter filters the event list.
type EventListFilter struct {
	Page       int
	PageSize   int
	DJID       uint
	ProducerID uint
	Status     string
	Search     string
	DateFrom   *time.Time
	DateTo     *time.Time
	WithDJ     bool
}

// DJListFilter filters the DJ roster list.
type DJListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// ContractListFilter filters the contract list.
type ContractListFilter struct {
	Page     int
	PageSize int
	EventID  uint
	DJID     uint
	Status   string
}

// AccountListFilter filters the account list.
type AccountListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Role     string
	Status   string
}
