package service

import (
	"strings"
	"time"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/constants"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/models"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/repository"
)

// ContractService manages booking agreements.
type ContractService struct {
	contractRepo repository.ContractRepository
	eventRepo    repository.EventRepository
}

// NewContractService creates the contract service.
func NewContractService(contractRepo repository.ContractRepository, eventRepo repository.EventRepository) *ContractService {
	return &ContractService{
		contractRepo: contractRepo,
		eventRepo:    eventRepo,
	}
}

// ContractInput is the create/update input.
type ContractInput struct {
	EventID uint
	Status  string
	FileURL string
	Notes   string
}

// CreateContract drafts a contract for an event. The DJ is taken
// from the event.
func (s *ContractService) CreateContract(input ContractInput) (*models.Contract, error) {
	event, err := s.eventRepo.GetByID(input.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	contract := &models.Contract{
		EventID: event.ID,
		DJID:    event.DJID,
		Status:  normalizeContractStatus(input.Status),
		FileURL: strings.TrimSpace(input.FileURL),
		Notes:   input.Notes,
	}
	if contract.Status == constants.ContractStatusSigned {
		now := time.Now()
		contract.SignedAt = &now
	}
	if err := s.contractRepo.Create(contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// UpdateContract edits a contract. Moving to signed stamps SignedAt.
func (s *ContractService) UpdateContract(id uint, input ContractInput) (*models.Contract, error) {
	contract, err := s.contractRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, ErrContractNotFound
	}

	if input.Status != "" {
		status := normalizeContractStatus(input.Status)
		if status == constants.ContractStatusSigned && contract.Status != constants.ContractStatusSigned {
			now := time.Now()
			contract.SignedAt = &now
		}
		contract.Status = status
	}
	if input.FileURL != "" {
		contract.FileURL = strings.TrimSpace(input.FileURL)
	}
	if input.Notes != "" {
		contract.Notes = input.Notes
	}

	if err := s.contractRepo.Update(contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// DeleteContract removes a contract.
func (s *ContractService) DeleteContract(id uint) error {
	contract, err := s.contractRepo.GetByID(id)
	if err != nil {
		return err
	}
	if contract == nil {
		return ErrContractNotFound
	}
	return s.contractRepo.Delete(id)
}

// GetContract fetches a contract.
func (s *ContractService) GetContract(id uint) (*models.Contract, error) {
	contract, err := s.contractRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, ErrContractNotFound
	}
	return contract, nil
}

// ListContracts returns a filtered contract page.
func (s *ContractService) ListContracts(filter repository.ContractListFilter) ([]models.Contract, int64, error) {
	return s.contractRepo.List(filter)
}

func normalizeContractStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case constants.ContractStatusSent:
		return constants.ContractStatusSent
	case constants.ContractStatusSigned:
		return constants.ContractStatusSigned
	case constants.ContractStatusVoided:
		return constants.ContractStatusVoided
	default:
		return constants.ContractStatusDraft
	}
}
