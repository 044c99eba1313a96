package dto

import (
	"github.com/medicheck/medicheck-api/internal/models"
)

// TagDTO represents a tag in API responses. The id is read-only.
type TagDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// TagListResponse wraps a list of tags
type TagListResponse struct {
	Tags []TagDTO `json:"tags"`
}

// ToTagDTO converts a Tag model to TagDTO
func ToTagDTO(tag models.Tag) TagDTO {
	return TagDTO{
		ID:   tag.ID,
		Name: tag.Name,
	}
}

// ToTagDTOs converts a slice of Tag models
func ToTagDTOs(tags []models.Tag) []TagDTO {
	dtos := make([]TagDTO, len(tags))
	for i, tag := range tags {
		dtos[i] = ToTagDTO(tag)
	}
	return dtos
}
