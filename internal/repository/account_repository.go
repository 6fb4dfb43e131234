package repository

import (
	"errors"
	"strings"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/models"

	"gorm.io/gorm"
)

// AccountRepository is the account data access interface.
type AccountRepository interface {
	Create(account *models.Account) error
	Update(account *models.Account) error
	GetByID(id uint) (*models.Account, error)
	GetByEmail(email string) (*models.Account, error)
	List(filter AccountListFilter) ([]models.Account, int64, error)
	WithTx(tx *gorm.DB) *GormAccountRepository
}

// GormAccountRepository is the GORM implementation.
type GormAccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository.
func NewAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormAccountRepository) WithTx(tx *gorm.DB) *GormAccountRepository {
	if tx == nil {
		return r
	}
	return &GormAccountRepository{db: tx}
}

// Create inserts an account.
func (r *GormAccountRepository) Create(account *models.Account) error {
	return r.db.Create(account).Error
}

// Update persists an account.
func (r *GormAccountRepository) Update(account *models.Account) error {
	return r.db.Save(account).Error
}

// GetByID fetches an account, nil when absent.
func (r *GormAccountRepository) GetByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// GetByEmail fetches an account by normalized email, nil when absent.
func (r *GormAccountRepository) GetByEmail(email string) (*models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	var account models.Account
	result := r.db.Where("email = ?", email).Limit(1).Find(&account)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &account, nil
}

// List returns a filtered account page plus the unpaged total.
func (r *GormAccountRepository) List(filter AccountListFilter) ([]models.Account, int64, error) {
	query := r.db.Model(&models.Account{})

	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("email LIKE ? OR name LIKE ?", like, like)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var accounts []models.Account
	if err := query.Order("id desc").Find(&accounts).Error; err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}
