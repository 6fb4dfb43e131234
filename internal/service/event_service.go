package service

import (
	"strings"
	"time"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/constants"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/models"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/repository"

	"github.com/shopspring/decimal"
)

// EventService manages bookings.
type EventService struct {
	eventRepo repository.EventRepository
	djRepo    repository.DJRepository
}

// NewEventService creates the event service.
func NewEventService(eventRepo repository.EventRepository, djRepo repository.DJRepository) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		djRepo:    djRepo,
	}
}

// EventInput is the create/update input.
type EventInput struct {
	Title      string
	Date       time.Time
	Venue      string
	City       string
	DJID       uint
	CacheValue decimal.Decimal
	Status     string
	Notes      string
}

// CreateEvent books an event. The fee defaults to the DJ's base fee
// when not given.
func (s *EventService) CreateEvent(input EventInput, actor Actor) (*models.Event, error) {
	dj, err := s.djRepo.GetByID(input.DJID)
	if err != nil {
		return nil, err
	}
	if dj == nil {
		return nil, ErrDJNotFound
	}

	fee := input.CacheValue
	if fee.IsZero() {
		fee = dj.BaseFee.Decimal
	}
	if fee.IsNegative() {
		return nil, ErrAmountInvalid
	}

	event := &models.Event{
		Title:      strings.TrimSpace(input.Title),
		Date:       input.Date,
		Venue:      strings.TrimSpace(input.Venue),
		City:       strings.TrimSpace(input.City),
		DJID:       dj.ID,
		ProducerID: actor.AccountID,
		CacheValue: models.NewMoneyFromDecimal(fee),
		Status:     normalizeEventStatus(input.Status),
		Notes:      input.Notes,
	}
	if err := s.eventRepo.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

// UpdateEvent edits a booking.
func (s *EventService) UpdateEvent(id uint, input EventInput) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	if input.DJID != 0 && input.DJID != event.DJID {
		dj, err := s.djRepo.GetByID(input.DJID)
		if err != nil {
			return nil, err
		}
		if dj == nil {
			return nil, ErrDJNotFound
		}
		event.DJID = dj.ID
	}
	if strings.TrimSpace(input.Title) != "" {
		event.Title = strings.TrimSpace(input.Title)
	}
	if !input.Date.IsZero() {
		event.Date = input.Date
	}
	if input.Venue != "" {
		event.Venue = strings.TrimSpace(input.Venue)
	}
	if input.City != "" {
		event.City = strings.TrimSpace(input.City)
	}
	if !input.CacheValue.IsZero() {
		if input.CacheValue.IsNegative() {
			return nil, ErrAmountInvalid
		}
		event.CacheValue = models.NewMoneyFromDecimal(input.CacheValue)
	}
	if input.Status != "" {
		event.Status = normalizeEventStatus(input.Status)
	}
	if input.Notes != "" {
		event.Notes = input.Notes
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent removes a booking.
func (s *EventService) DeleteEvent(id uint) error {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}
	return s.eventRepo.Delete(id)
}

// GetEvent fetches a booking.
func (s *EventService) GetEvent(id uint) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// ListEvents returns a filtered booking page.
func (s *EventService) ListEvents(filter repository.EventListFilter) ([]models.Event, int64, error) {
	return s.eventRepo.List(filter)
}

func normalizeEventStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case constants.EventStatusConfirmed:
		return constants.EventStatusConfirmed
	case constants.EventStatusCompleted:
		return constants.EventStatusCompleted
	case constants.EventStatusCanceled:
		return constants.EventStatusCanceled
	default:
		return constants.EventStatusScheduled
	}
}
