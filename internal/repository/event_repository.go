package repository

import (
	"errors"
	"time"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/models"

	"gorm.io/gorm"
)

// EventRepository is the event data access interface.
type EventRepository interface {
	Create(event *models.Event) error
	Update(event *models.Event) error
	Delete(id uint) error
	GetByID(id uint) (*models.Event, error)
	List(filter EventListFilter) ([]models.Event, int64, error)
	CountUpcoming(now time.Time) (int64, error)
	WithTx(tx *gorm.DB) *GormEventRepository
}

// GormEventRepository is the GORM implementation.
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates an event repository.
func NewEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormEventRepository) WithTx(tx *gorm.DB) *GormEventRepository {
	if tx == nil {
		return r
	}
	return &GormEventRepository{db: tx}
}

// Create inserts an event.
func (r *GormEventRepository) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

// Update persists an event.
func (r *GormEventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

// Delete soft-deletes an event.
func (r *GormEventRepository) Delete(id uint) error {
	return r.db.Delete(&models.Event{}, id).Error
}

// GetByID fetches an event with its DJ, nil when absent.
func (r *GormEventRepository) GetByID(id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.Preload("DJ").First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

// CountUpcoming counts events from now on that are not canceled.
func (r *GormEventRepository) CountUpcoming(now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Event{}).
		Where("date >= ? AND status <> ?", now, "canceled").
		Count(&count).Error
	return count, err
}

// List returns a filtered event page plus the unpaged total.
func (r *GormEventRepository) List(filter EventListFilter) ([]models.Event, int64, error) {
	query := r.db.Model(&models.Event{})

	if filter.DJID != 0 {
		query = query.Where("dj_id = ?", filter.DJID)
	}
	if filter.ProducerID != 0 {
		query = query.Where("producer_id = ?", filter.ProducerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR venue LIKE ? OR city LIKE ?", like, like, like)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if filter.WithDJ {
		query = query.Preload("DJ")
	}

	var events []models.Event
	if err := query.Order("date desc").Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}
