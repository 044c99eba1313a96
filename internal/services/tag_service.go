package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/medicheck/medicheck-api/internal/constants"
	"github.com/medicheck/medicheck-api/internal/models"
	"github.com/medicheck/medicheck-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTagNotFound = errors.New("tag not found")
)

// TagService handles tag business logic
type TagService struct {
	tagRepo repository.TagRepository
}

// NewTagService creates a new TagService
func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{
		tagRepo: tagRepo,
	}
}

func validateTagName(name string) error {
	fields := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fields["name"] = "name is required"
	} else if len(name) > constants.MaxNameLength {
		fields["name"] = fmt.Sprintf("name must be at most %d characters", constants.MaxNameLength)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// List returns the owner's tags
func (s *TagService) List(ownerID uint64) ([]models.Tag, error) {
	return s.tagRepo.List(ownerID)
}

// Create resolves a tag by name for the owner. Posting a name the owner
// already has returns the existing row instead of duplicating it.
func (s *TagService) Create(ownerID uint64, name string) (*models.Tag, error) {
	if err := validateTagName(name); err != nil {
		return nil, err
	}
	tag, err := s.tagRepo.GetOrCreate(ownerID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

// Update renames one of the owner's tags
func (s *TagService) Update(ownerID, id uint64, name string) (*models.Tag, error) {
	if err := validateTagName(name); err != nil {
		return nil, err
	}
	tag, err := s.tagRepo.Update(ownerID, id, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}
	return tag, nil
}

// Delete removes one of the owner's tags, detaching it from any diseases
func (s *TagService) Delete(ownerID, id uint64) error {
	if err := s.tagRepo.Delete(ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}
