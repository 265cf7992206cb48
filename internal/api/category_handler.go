package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newsroom-content-api/internal/models"
	"github.com/newsroom-content-api/internal/service"
	"github.com/newsroom-content-api/internal/validation"
	"github.com/rs/zerolog"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(services *service.Services, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		services: services,
		log:      log.With().Str("handler", "category").Logger(),
	}
}

// List handles GET /v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.services.Category.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetByID handles GET /v1/categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	category, err := h.services.Category.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if category == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// GetBySlug handles GET /v1/categories/slug/:slug
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	category, err := h.services.Category.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if category == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// Create handles POST /v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validation.Slug(req.Slug); err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := validation.Color(req.Color); err != nil {
		respondError(c, h.log, err)
		return
	}

	category, err := h.services.Category.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// Update handles PATCH /v1/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	var patch models.CategoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if patch.Slug != nil {
		if err := validation.Slug(*patch.Slug); err != nil {
			respondError(c, h.log, err)
			return
		}
	}
	if patch.Color != nil {
		if err := validation.Color(*patch.Color); err != nil {
			respondError(c, h.log, err)
			return
		}
	}

	category, err := h.services.Category.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Remove handles DELETE /v1/categories/:id
func (h *CategoryHandler) Remove(c *gin.Context) {
	if err := h.services.Category.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
