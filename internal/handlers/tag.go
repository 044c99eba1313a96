package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medicheck/medicheck-api/internal/dto"
	apierrors "github.com/medicheck/medicheck-api/internal/errors"
	"github.com/medicheck/medicheck-api/internal/middleware"
	"github.com/medicheck/medicheck-api/internal/services"
)

// TagHandler coordinates tag-related HTTP handlers.
type TagHandler struct {
	tagService *services.TagService
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
	}
}

// ListTags returns the caller's tags.
func (h *TagHandler) ListTags(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tags, err := h.tagService.List(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tags")
		return
	}

	c.JSON(http.StatusOK, dto.TagListResponse{Tags: dto.ToTagDTOs(tags)})
}

// CreateTag resolves a tag by name for the caller. Posting a name the
// caller already owns returns the existing row.
func (h *TagHandler) CreateTag(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTagRequest struct {
		Name string `json:"name"`
	}

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	tag, err := h.tagService.Create(userID, req.Name)
	if err != nil {
		respondDiseaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTagDTO(*tag))
}

// UpdateTag renames one of the caller's tags.
func (h *TagHandler) UpdateTag(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateTagRequest struct {
		Name string `json:"name"`
	}

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	tag, err := h.tagService.Update(userID, id, req.Name)
	if err != nil {
		respondDiseaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTagDTO(*tag))
}

// DeleteTag removes one of the caller's tags. Diseases that carried the
// tag keep existing without it.
func (h *TagHandler) DeleteTag(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.tagService.Delete(userID, id); err != nil {
		respondDiseaseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
