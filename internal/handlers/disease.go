package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/medicheck/medicheck-api/internal/dto"
	apierrors "github.com/medicheck/medicheck-api/internal/errors"
	"github.com/medicheck/medicheck-api/internal/middleware"
	"github.com/medicheck/medicheck-api/internal/services"
	"github.com/medicheck/medicheck-api/internal/utils"
)

// DiseaseHandler coordinates disease-related HTTP handlers.
type DiseaseHandler struct {
	diseaseService *services.DiseaseService
	aiService      *services.AIService
}

// NewDiseaseHandler creates a new DiseaseHandler.
func NewDiseaseHandler(diseaseService *services.DiseaseService, aiService *services.AIService) *DiseaseHandler {
	return &DiseaseHandler{
		diseaseService: diseaseService,
		aiService:      aiService,
	}
}

// TagInput is the nested wire form of a tag reference: {"name": "Viral"}
type TagInput struct {
	Name string `json:"name"`
}

func tagInputNames(inputs []TagInput) []string {
	names := make([]string, len(inputs))
	for i, t := range inputs {
		names[i] = t.Name
	}
	return names
}

// ListDiseases returns the caller's diseases with their tags.
func (h *DiseaseHandler) ListDiseases(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	diseases, total, err := h.diseaseService.List(userID, params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch diseases")
		return
	}

	c.JSON(http.StatusOK, dto.ToDiseaseListResponse(diseases, params, total))
}

// GetDisease returns one of the caller's diseases by ID.
func (h *DiseaseHandler) GetDisease(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	disease, err := h.diseaseService.Get(userID, id)
	if err != nil {
		respondDiseaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDiseaseDTO(*disease))
}

// CreateDisease creates a new disease owned by the caller. Any owner
// field in the payload is not part of the request shape and is dropped.
func (h *DiseaseHandler) CreateDisease(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateDiseaseRequest struct {
		Name        string     `json:"name"`
		Symptoms    string     `json:"symptoms"`
		Description string     `json:"description"`
		Prevention  string     `json:"prevention"`
		Cause       string     `json:"cause"`
		Doctor      string     `json:"doctor"`
		Link        string     `json:"link"`
		Tags        []TagInput `json:"tags"`
	}

	var req CreateDiseaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	disease, err := h.diseaseService.Create(userID, services.CreateDiseaseInput{
		Name:        req.Name,
		Symptoms:    req.Symptoms,
		Description: req.Description,
		Prevention:  req.Prevention,
		Cause:       req.Cause,
		Doctor:      req.Doctor,
		Link:        req.Link,
		Tags:        tagInputNames(req.Tags),
	})
	if err != nil {
		respondDiseaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDiseaseDTO(*disease))
}

// UpdateDisease updates one of the caller's diseases. PATCH changes only
// the supplied fields; PUT additionally requires the name. The raw JSON
// is inspected so an absent "tags" key (leave associations alone) is
// distinguishable from "tags": [] (clear them).
func (h *DiseaseHandler) UpdateDisease(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	fields := map[string]string{}
	input := services.UpdateDiseaseInput{
		Name:        stringField(rawReq, "name", fields),
		Symptoms:    stringField(rawReq, "symptoms", fields),
		Description: stringField(rawReq, "description", fields),
		Prevention:  stringField(rawReq, "prevention", fields),
		Cause:       stringField(rawReq, "cause", fields),
		Doctor:      stringField(rawReq, "doctor", fields),
		Link:        stringField(rawReq, "link", fields),
	}

	if rawTags, present := rawReq["tags"]; present {
		if rawTags == nil {
			fields["tags"] = "tags may not be null"
		} else if names, ok := tagNamesFromRaw(rawTags); ok {
			input.Tags = &names
		} else {
			fields["tags"] = "tags must be a list of {\"name\": ...} objects"
		}
	}

	if len(fields) > 0 {
		apierrors.ValidationFailed(c, fields)
		return
	}

	if c.Request.Method == http.MethodPut && input.Name == nil {
		apierrors.ValidationFailed(c, map[string]string{"name": "name is required"})
		return
	}

	disease, err := h.diseaseService.Update(userID, id, input)
	if err != nil {
		respondDiseaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDiseaseDTO(*disease))
}

// DeleteDisease deletes one of the caller's diseases.
func (h *DiseaseHandler) DeleteDisease(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.diseaseService.Delete(userID, id); err != nil {
		respondDiseaseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SuggestDisease drafts a catalog entry from free text using AI.
func (h *DiseaseHandler) SuggestDisease(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SuggestRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
		return
	}

	suggestion, err := h.aiService.SuggestDisease(context.Background(), req.Text)
	if err != nil {
		apierrors.InternalError(c, "Failed to generate suggestion")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestion": suggestion,
	})
}

// parseIDParam reads the :id path parameter, responding 400 when malformed.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}

// stringField returns a pointer to the string value of key when the key
// is present with a string value. An absent key returns nil; a present
// key of any other type (null included) records a field error.
func stringField(raw map[string]any, key string, fields map[string]string) *string {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		fields[key] = key + " must be a string"
		return nil
	}
	return &s
}

func tagNamesFromRaw(rawTags any) ([]string, bool) {
	items, ok := rawTags.([]any)
	if !ok {
		return nil, false
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		name, ok := obj["name"].(string)
		if !ok {
			return nil, false
		}
		names = append(names, name)
	}
	return names, true
}

func respondDiseaseError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		apierrors.ValidationFailed(c, vErr.Fields)
	case errors.Is(err, services.ErrDiseaseNotFound):
		apierrors.NotFound(c, "Disease not found")
	case errors.Is(err, services.ErrTagNotFound):
		apierrors.NotFound(c, "Tag not found")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
