package repository

import (
	"errors"

	"github.com/medicheck/medicheck-api/internal/database"
	"github.com/medicheck/medicheck-api/internal/models"
	"gorm.io/gorm"
)

// GormTagRepository is a GORM implementation of TagRepository
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &GormTagRepository{db: db}
}

// resolveTag looks up the (owner, name) tag, creating it on first use.
// Two concurrent resolvers can both miss the lookup; the unique index on
// (user_id, name) makes the second insert fail with ErrDuplicatedKey, in
// which case the now-existing row is re-read instead of failing the
// request. Existing rows are never mutated.
func resolveTag(db *gorm.DB, ownerID uint64, name string) (*models.Tag, error) {
	var tag models.Tag
	err := db.Scopes(database.OwnedBy(ownerID)).Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = models.Tag{UserID: ownerID, Name: name}
	if err := db.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.Tag
			if err := db.Scopes(database.OwnedBy(ownerID)).Where("name = ?", name).First(&existing).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}
	return &tag, nil
}

// List retrieves the owner's tags ordered by name descending
func (r *GormTagRepository) List(ownerID uint64) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Scopes(database.OwnedBy(ownerID)).
		Order("name DESC").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetOrCreate resolves (owner, name) to a single tag row
func (r *GormTagRepository) GetOrCreate(ownerID uint64, name string) (*models.Tag, error) {
	return resolveTag(r.db, ownerID, name)
}

// Update renames one of the owner's tags
func (r *GormTagRepository) Update(ownerID, id uint64, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Scopes(database.OwnedBy(ownerID)).First(&tag, id).Error; err != nil {
		return nil, err
	}

	tag.Name = name
	if err := r.db.Save(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// Delete removes one of the owner's tags and its disease associations.
// Associated diseases are left in place.
func (r *GormTagRepository) Delete(ownerID, id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.Scopes(database.OwnedBy(ownerID)).First(&tag, id).Error; err != nil {
			return err
		}

		if err := tx.Model(&tag).Association("Diseases").Clear(); err != nil {
			return err
		}

		return tx.Delete(&tag).Error
	})
}
