package service

import (
	"strings"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/models"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/repository"

	"github.com/shopspring/decimal"
)

// DJService manages the artist roster.
type DJService struct {
	djRepo repository.DJRepository
}

// NewDJService creates the DJ service.
func NewDJService(djRepo repository.DJRepository) *DJService {
	return &DJService{djRepo: djRepo}
}

// DJInput is the create/update input.
type DJInput struct {
	Name       string
	ArtistName string
	Email      string
	Phone      string
	CNPJ       string
	BaseFee    decimal.Decimal
	Genres     string
	Active     *bool
	Notes      string
}

// CreateDJ adds an artist to the roster.
func (s *DJService) CreateDJ(input DJInput) (*models.DJ, error) {
	if input.BaseFee.IsNegative() {
		return nil, ErrAmountInvalid
	}
	dj := &models.DJ{
		Name:       strings.TrimSpace(input.Name),
		ArtistName: strings.TrimSpace(input.ArtistName),
		Email:      strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:      strings.TrimSpace(input.Phone),
		CNPJ:       strings.TrimSpace(input.CNPJ),
		BaseFee:    models.NewMoneyFromDecimal(input.BaseFee),
		Genres:     strings.TrimSpace(input.Genres),
		Active:     true,
		Notes:      input.Notes,
	}
	if input.Active != nil {
		dj.Active = *input.Active
	}
	if err := s.djRepo.Create(dj); err != nil {
		return nil, err
	}
	return dj, nil
}

// UpdateDJ edits a roster entry.
func (s *DJService) UpdateDJ(id uint, input DJInput) (*models.DJ, error) {
	dj, err := s.djRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dj == nil {
		return nil, ErrDJNotFound
	}

	if strings.TrimSpace(input.Name) != "" {
		dj.Name = strings.TrimSpace(input.Name)
	}
	if strings.TrimSpace(input.ArtistName) != "" {
		dj.ArtistName = strings.TrimSpace(input.ArtistName)
	}
	if input.Email != "" {
		dj.Email = strings.ToLower(strings.TrimSpace(input.Email))
	}
	if input.Phone != "" {
		dj.Phone = strings.TrimSpace(input.Phone)
	}
	if input.CNPJ != "" {
		dj.CNPJ = strings.TrimSpace(input.CNPJ)
	}
	if !input.BaseFee.IsZero() {
		if input.BaseFee.IsNegative() {
			return nil, ErrAmountInvalid
		}
		dj.BaseFee = models.NewMoneyFromDecimal(input.BaseFee)
	}
	if input.Genres != "" {
		dj.Genres = strings.TrimSpace(input.Genres)
	}
	if input.Active != nil {
		dj.Active = *input.Active
	}
	if input.Notes != "" {
		dj.Notes = input.Notes
	}

	if err := s.djRepo.Update(dj); err != nil {
		return nil, err
	}
	return dj, nil
}

// DeleteDJ removes an artist from the roster.
func (s *DJService) DeleteDJ(id uint) error {
	dj, err := s.djRepo.GetByID(id)
	if err != nil {
		return err
	}
	if dj == nil {
		return ErrDJNotFound
	}
	return s.djRepo.Delete(id)
}

// GetDJ fetches a roster entry.
func (s *DJService) GetDJ(id uint) (*models.DJ, error) {
	dj, err := s.djRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dj == nil {
		return nil, ErrDJNotFound
	}
	return dj, nil
}

// ListDJs returns a filtered roster page.
func (s *DJService) ListDJs(filter repository.DJListFilter) ([]models.DJ, int64, error) {
	return s.djRepo.List(filter)
}
