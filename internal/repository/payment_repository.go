package repository

import (
	"errors"
	"time"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/constants"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/models"

	"gorm.io/gorm"
)

// PaymentRepository is the payment data access interface.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	Update(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	ListByEventID(eventID uint) ([]models.Payment, error)
	List(filter PaymentListFilter) ([]models.Payment, int64, error)
	ListPendingDueBefore(cutoff time.Time) ([]models.Payment, error)
	WithTx(tx *gorm.DB) *GormPaymentRepository
}

// GormPaymentRepository is the GORM implementation.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a payment repository.
func NewPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormPaymentRepository) WithTx(tx *gorm.DB) *GormPaymentRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentRepository{db: tx}
}

// Create inserts a payment obligation.
func (r *GormPaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// Update persists a payment.
func (r *GormPaymentRepository) Update(payment *models.Payment) error {
	return r.db.Save(payment).Error
}

// GetByID fetches a payment, nil when absent.
func (r *GormPaymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Preload("Event").First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// ListByEventID fetches all obligations for an event.
func (r *GormPaymentRepository) ListByEventID(eventID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.Where("event_id = ?", eventID).Order("id desc").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// ListPendingDueBefore fetches pending payments whose due date has
// passed the cutoff (the overdue scan query).
func (r *GormPaymentRepository) ListPendingDueBefore(cutoff time.Time) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.
		Where("status = ? AND due_at < ?", constants.PaymentStatusPending, cutoff).
		Order("due_at asc").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// List returns a filtered payment page plus the unpaged total.
func (r *GormPaymentRepository) List(filter PaymentListFilter) ([]models.Payment, int64, error) {
	query := r.db.Model(&models.Payment{})

	if filter.EventID != 0 {
		query = query.Where("payments.event_id = ?", filter.EventID)
	}
	if filter.DJID != 0 || filter.ProducerID != 0 {
		query = query.Joins("LEFT JOIN events ON events.id = payments.event_id")
		if filter.DJID != 0 {
			query = query.Where("events.dj_id = ?", filter.DJID)
		}
		if filter.ProducerID != 0 {
			query = query.Where("events.producer_id = ?", filter.ProducerID)
		}
	}
	if filter.Status != "" {
		query = query.Where("payments.status = ?", filter.Status)
	}
	if filter.OverdueOnly {
		now := filter.Now
		if now.IsZero() {
			now = time.Now()
		}
		query = query.Where("payments.status = ? AND payments.due_at < ?", constants.PaymentStatusPending, now)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("payments.created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("payments.created_at <= ?", *filter.CreatedTo)
	}
	if filter.DueFrom != nil {
		query = query.Where("payments.due_at >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("payments.due_at <= ?", *filter.DueTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var payments []models.Payment
	if err := query.Preload("Event").Order("payments.id desc").Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}
