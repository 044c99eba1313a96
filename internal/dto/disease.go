package dto

import (
	"time"

	"github.com/medicheck/medicheck-api/internal/models"
	"github.com/medicheck/medicheck-api/internal/utils"
)

// DiseaseDTO represents a disease entry in API responses. List and
// detail views share this single field set.
type DiseaseDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Cause       string    `json:"cause"`
	Symptoms    string    `json:"symptoms"`
	Prevention  string    `json:"prevention"`
	Doctor      string    `json:"doctor"`
	Link        string    `json:"link"`
	Tags        []TagDTO  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DiseaseListResponse represents a paginated list of diseases
type DiseaseListResponse struct {
	Diseases   []DiseaseDTO             `json:"diseases"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToDiseaseDTO converts a Disease model to DiseaseDTO
func ToDiseaseDTO(disease models.Disease) DiseaseDTO {
	return DiseaseDTO{
		ID:          disease.ID,
		Name:        disease.Name,
		Description: disease.Description,
		Cause:       disease.Cause,
		Symptoms:    disease.Symptoms,
		Prevention:  disease.Prevention,
		Doctor:      disease.Doctor,
		Link:        disease.Link,
		Tags:        ToTagDTOs(disease.Tags),
		CreatedAt:   disease.CreatedAt,
		UpdatedAt:   disease.UpdatedAt,
	}
}

// ToDiseaseListResponse converts a slice of diseases to a list response
func ToDiseaseListResponse(diseases []models.Disease, params utils.PaginationParams, total int64) DiseaseListResponse {
	items := make([]DiseaseDTO, len(diseases))
	for i, disease := range diseases {
		items[i] = ToDiseaseDTO(disease)
	}

	return DiseaseListResponse{
		Diseases: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
