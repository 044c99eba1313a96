package repository

import (
	"github.com/medicheck/medicheck-api/internal/database"
	"github.com/medicheck/medicheck-api/internal/models"
	"github.com/medicheck/medicheck-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDiseaseRepository is a GORM implementation of DiseaseRepository
type GormDiseaseRepository struct {
	db *gorm.DB
}

// NewDiseaseRepository creates a new DiseaseRepository
func NewDiseaseRepository(db *gorm.DB) DiseaseRepository {
	return &GormDiseaseRepository{db: db}
}

// List retrieves the owner's diseases in insertion order with their tags
func (r *GormDiseaseRepository) List(ownerID uint64, params utils.PaginationParams) ([]models.Disease, int64, error) {
	query := r.db.Model(&models.Disease{}).Scopes(database.OwnedBy(ownerID))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var diseases []models.Disease
	if err := query.
		Preload("Tags").
		Order("id ASC").
		Scopes(database.Paginate(params)).
		Find(&diseases).Error; err != nil {
		return nil, 0, err
	}

	return diseases, total, nil
}

// FindByID finds one of the owner's diseases with its tags
func (r *GormDiseaseRepository) FindByID(ownerID, id uint64) (*models.Disease, error) {
	var disease models.Disease
	if err := r.db.Scopes(database.OwnedBy(ownerID)).
		Preload("Tags").
		First(&disease, id).Error; err != nil {
		return nil, err
	}
	return &disease, nil
}

// Create persists a new disease and attaches resolved tags atomically.
// The owner must already be set on the model; tag names are resolved
// against that owner, reusing rows the owner already has.
func (r *GormDiseaseRepository) Create(disease *models.Disease, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(disease).Error; err != nil {
			return err
		}

		for _, name := range tagNames {
			tag, err := resolveTag(tx, *disease.UserID, name)
			if err != nil {
				return err
			}
			if err := tx.Model(disease).Association("Tags").Append(tag); err != nil {
				return err
			}
		}

		return nil
	})
}

// Update saves the disease fields and, when tagNames is non-nil, replaces
// the tag associations. An empty non-nil slice clears all tags; nil
// leaves them untouched.
func (r *GormDiseaseRepository) Update(disease *models.Disease, tagNames *[]string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Associations are managed explicitly below; Save must not touch
		// the preloaded Tags slice.
		if err := tx.Omit(clause.Associations).Save(disease).Error; err != nil {
			return err
		}

		if tagNames == nil {
			return nil
		}

		if err := tx.Model(disease).Association("Tags").Clear(); err != nil {
			return err
		}

		tags := make([]models.Tag, 0, len(*tagNames))
		for _, name := range *tagNames {
			tag, err := resolveTag(tx, *disease.UserID, name)
			if err != nil {
				return err
			}
			if err := tx.Model(disease).Association("Tags").Append(tag); err != nil {
				return err
			}
			tags = append(tags, *tag)
		}
		disease.Tags = tags

		return nil
	})
}

// Delete removes one of the owner's diseases along with its tag
// associations. The tag rows themselves survive.
func (r *GormDiseaseRepository) Delete(ownerID, id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var disease models.Disease
		if err := tx.Scopes(database.OwnedBy(ownerID)).First(&disease, id).Error; err != nil {
			return err
		}

		if err := tx.Model(&disease).Association("Tags").Clear(); err != nil {
			return err
		}

		return tx.Delete(&disease).Error
	})
}
