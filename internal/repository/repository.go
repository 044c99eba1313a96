package repository

import (
	"github.com/medicheck/medicheck-api/internal/models"
	"github.com/medicheck/medicheck-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// DiseaseRepository defines the interface for disease data access.
// Every method takes the owner explicitly; there is no unscoped variant.
// A row owned by someone else behaves exactly like a missing row
// (gorm.ErrRecordNotFound).
type DiseaseRepository interface {
	// List retrieves the owner's diseases in insertion order, tags preloaded
	List(ownerID uint64, params utils.PaginationParams) ([]models.Disease, int64, error)

	// FindByID finds one of the owner's diseases by ID, tags preloaded
	FindByID(ownerID, id uint64) (*models.Disease, error)

	// Create persists a new disease and attaches resolved tags atomically
	Create(disease *models.Disease, tagNames []string) error

	// Update saves the disease fields. A nil tagNames leaves the tag
	// associations untouched; a non-nil slice fully replaces them, so an
	// empty slice clears all tags.
	Update(disease *models.Disease, tagNames *[]string) error

	// Delete removes one of the owner's diseases and its tag associations
	Delete(ownerID, id uint64) error
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	// List retrieves the owner's tags ordered by name descending
	List(ownerID uint64) ([]models.Tag, error)

	// GetOrCreate resolves (owner, name) to a single tag row, creating it
	// on first use. Safe under concurrent identical calls.
	GetOrCreate(ownerID uint64, name string) (*models.Tag, error)

	// Update renames one of the owner's tags
	Update(ownerID, id uint64, name string) (*models.Tag, error)

	// Delete removes one of the owner's tags, detaching it from diseases
	Delete(ownerID, id uint64) error
}
