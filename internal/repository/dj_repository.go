package repository

import (
	"errors"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/models"

	"gorm.io/gorm"
)

// DJRepository is the roster data access interface.
type DJRepository interface {
	Create(dj *models.DJ) error
	Update(dj *models.DJ) error
	Delete(id uint) error
	GetByID(id uint) (*models.DJ, error)
	List(filter DJListFilter) ([]models.DJ, int64, error)
	CountActive() (int64, error)
	WithTx(tx *gorm.DB) *GormDJRepository
}

// GormDJRepository is the GORM implementation.
type GormDJRepository struct {
	db *gorm.DB
}

// NewDJRepository creates a DJ repository.
func NewDJRepository(db *gorm.DB) *GormDJRepository {
	return &GormDJRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormDJRepository) WithTx(tx *gorm.DB) *GormDJRepository {
	if tx == nil {
		return r
	}
	return &GormDJRepository{db: tx}
}

// Create inserts a DJ.
func (r *GormDJRepository) Create(dj *models.DJ) error {
	return r.db.Create(dj).Error
}

// Update persists a DJ.
func (r *GormDJRepository) Update(dj *models.DJ) error {
	return r.db.Save(dj).Error
}

// Delete soft-deletes a DJ.
func (r *GormDJRepository) Delete(id uint) error {
	return r.db.Delete(&models.DJ{}, id).Error
}

// GetByID fetches a DJ, nil when absent.
func (r *GormDJRepository) GetByID(id uint) (*models.DJ, error) {
	var dj models.DJ
	if err := r.db.First(&dj, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dj, nil
}

// CountActive counts active roster members.
func (r *GormDJRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.DJ{}).Where("active = ?", true).Count(&count).Error
	return count, err
}

// List returns a filtered roster page plus the unpaged total.
func (r *GormDJRepository) List(filter DJListFilter) ([]models.DJ, int64, error) {
	query := r.db.Model(&models.DJ{})

	if filter.OnlyActive {
		query = query.Where("active = ?", true)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR artist_name LIKE ? OR email LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var djs []models.DJ
	if err := query.Order("artist_name asc").Find(&djs).Error; err != nil {
		return nil, 0, err
	}
	return djs, total, nil
}
