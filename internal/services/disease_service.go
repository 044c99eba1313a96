package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/medicheck/medicheck-api/internal/constants"
	"github.com/medicheck/medicheck-api/internal/models"
	"github.com/medicheck/medicheck-api/internal/repository"
	"github.com/medicheck/medicheck-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrDiseaseNotFound = errors.New("disease not found")
)

// ValidationError carries per-field validation messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d invalid field(s)", len(e.Fields))
}

// DiseaseService handles disease business logic. The owner id on every
// method comes from the authenticated session, never from request input.
type DiseaseService struct {
	diseaseRepo repository.DiseaseRepository
}

// NewDiseaseService creates a new DiseaseService
func NewDiseaseService(diseaseRepo repository.DiseaseRepository) *DiseaseService {
	return &DiseaseService{
		diseaseRepo: diseaseRepo,
	}
}

// CreateDiseaseInput represents input for creating a disease
type CreateDiseaseInput struct {
	Name        string
	Symptoms    string
	Description string
	Prevention  string
	Cause       string
	Doctor      string
	Link        string
	Tags        []string
}

// UpdateDiseaseInput represents input for updating a disease. Nil fields
// are left unchanged; a nil Tags pointer leaves associations untouched
// while an empty slice clears them. The owner is not representable here,
// so a client-supplied owner can never reach the row.
type UpdateDiseaseInput struct {
	Name        *string
	Symptoms    *string
	Description *string
	Prevention  *string
	Cause       *string
	Doctor      *string
	Link        *string
	Tags        *[]string
}

func validateDiseaseFields(name, symptoms, doctor, link string) error {
	fields := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fields["name"] = "name is required"
	} else if len(name) > constants.MaxNameLength {
		fields["name"] = fmt.Sprintf("name must be at most %d characters", constants.MaxNameLength)
	}
	if len(symptoms) > constants.MaxShortText {
		fields["symptoms"] = fmt.Sprintf("symptoms must be at most %d characters", constants.MaxShortText)
	}
	if len(doctor) > constants.MaxShortText {
		fields["doctor"] = fmt.Sprintf("doctor must be at most %d characters", constants.MaxShortText)
	}
	if len(link) > constants.MaxShortText {
		fields["link"] = fmt.Sprintf("link must be at most %d characters", constants.MaxShortText)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Nested tag names go through the same rules as direct tag creation
// before any row is written.
func validateTagNames(names []string) error {
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Fields: map[string]string{"tags": "tag names may not be blank"}}
		}
		if len(name) > constants.MaxNameLength {
			return &ValidationError{Fields: map[string]string{
				"tags": fmt.Sprintf("tag names must be at most %d characters", constants.MaxNameLength),
			}}
		}
	}
	return nil
}

// List returns the owner's diseases with their tags
func (s *DiseaseService) List(ownerID uint64, params utils.PaginationParams) ([]models.Disease, int64, error) {
	return s.diseaseRepo.List(ownerID, params)
}

// Get returns one of the owner's diseases
func (s *DiseaseService) Get(ownerID, id uint64) (*models.Disease, error) {
	disease, err := s.diseaseRepo.FindByID(ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiseaseNotFound
		}
		return nil, fmt.Errorf("failed to find disease: %w", err)
	}
	return disease, nil
}

// Create validates and persists a new disease owned by ownerID
func (s *DiseaseService) Create(ownerID uint64, input CreateDiseaseInput) (*models.Disease, error) {
	if err := validateDiseaseFields(input.Name, input.Symptoms, input.Doctor, input.Link); err != nil {
		return nil, err
	}
	if err := validateTagNames(input.Tags); err != nil {
		return nil, err
	}

	disease := &models.Disease{
		UserID:      &ownerID,
		Name:        input.Name,
		Symptoms:    input.Symptoms,
		Description: input.Description,
		Prevention:  input.Prevention,
		Cause:       input.Cause,
		Doctor:      input.Doctor,
		Link:        input.Link,
	}

	if err := s.diseaseRepo.Create(disease, input.Tags); err != nil {
		return nil, fmt.Errorf("failed to create disease: %w", err)
	}

	// Reload so the response carries the resolved tag set
	return s.Get(ownerID, disease.ID)
}

// Update applies the supplied fields to one of the owner's diseases.
// Partial and full updates share this path; the handler decides which
// fields are mandatory.
func (s *DiseaseService) Update(ownerID, id uint64, input UpdateDiseaseInput) (*models.Disease, error) {
	disease, err := s.Get(ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		disease.Name = *input.Name
	}
	if input.Symptoms != nil {
		disease.Symptoms = *input.Symptoms
	}
	if input.Description != nil {
		disease.Description = *input.Description
	}
	if input.Prevention != nil {
		disease.Prevention = *input.Prevention
	}
	if input.Cause != nil {
		disease.Cause = *input.Cause
	}
	if input.Doctor != nil {
		disease.Doctor = *input.Doctor
	}
	if input.Link != nil {
		disease.Link = *input.Link
	}

	if err := validateDiseaseFields(disease.Name, disease.Symptoms, disease.Doctor, disease.Link); err != nil {
		return nil, err
	}
	if input.Tags != nil {
		if err := validateTagNames(*input.Tags); err != nil {
			return nil, err
		}
	}

	if err := s.diseaseRepo.Update(disease, input.Tags); err != nil {
		return nil, fmt.Errorf("failed to update disease: %w", err)
	}

	return s.Get(ownerID, id)
}

// Delete removes one of the owner's diseases
func (s *DiseaseService) Delete(ownerID, id uint64) error {
	if err := s.diseaseRepo.Delete(ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDiseaseNotFound
		}
		return fmt.Errorf("failed to delete disease: %w", err)
	}
	return nil
}
