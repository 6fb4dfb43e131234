package repository

import (
	"errors"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/models"

	"gorm.io/gorm"
)

// ContractRepository is the contract data access interface.
type ContractRepository interface {
	Create(contract *models.Contract) error
	Update(contract *models.Contract) error
	Delete(id uint) error
	GetByID(id uint) (*models.Contract, error)
	List(filter ContractListFilter) ([]models.Contract, int64, error)
	WithTx(tx *gorm.DB) *GormContractRepository
}

// GormContractRepository is the GORM implementation.
type GormContractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a contract repository.
func NewContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormContractRepository) WithTx(tx *gorm.DB) *GormContractRepository {
	if tx == nil {
		return r
	}
	return &GormContractRepository{db: tx}
}

// Create inserts a contract.
func (r *GormContractRepository) Create(contract *models.Contract) error {
	return r.db.Create(contract).Error
}

// Update persists a contract.
func (r *GormContractRepository) Update(contract *models.Contract) error {
	return r.db.Save(contract).Error
}

// Delete soft-deletes a contract.
func (r *GormContractRepository) Delete(id uint) error {
	return r.db.Delete(&models.Contract{}, id).Error
}

// GetByID fetches a contract with event and DJ, nil when absent.
func (r *GormContractRepository) GetByID(id uint) (*models.Contract, error) {
	var contract models.Contract
	if err := r.db.Preload("Event").Preload("DJ").First(&contract, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contract, nil
}

// List returns a filtered contract page plus the unpaged total.
func (r *GormContractRepository) List(filter ContractListFilter) ([]models.Contract, int64, error) {
	query := r.db.Model(&models.Contract{})

	if filter.EventID != 0 {
		query = query.Where("event_id = ?", filter.EventID)
	}
	if filter.DJID != 0 {
		query = query.Where("dj_id = ?", filter.DJID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var contracts []models.Contract
	if err := query.Preload("Event").Preload("DJ").Order("id desc").Find(&contracts).Error; err != nil {
		return nil, 0, err
	}
	return contracts, total, nil
}
