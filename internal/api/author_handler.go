package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newsroom-content-api/internal/models"
	"github.com/newsroom-content-api/internal/service"
	"github.com/newsroom-content-api/internal/validation"
	"github.com/rs/zerolog"
)

// AuthorHandler handles author endpoints
type AuthorHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAuthorHandler creates a new AuthorHandler
func NewAuthorHandler(services *service.Services, log zerolog.Logger) *AuthorHandler {
	return &AuthorHandler{
		services: services,
		log:      log.With().Str("handler", "author").Logger(),
	}
}

// List handles GET /v1/authors
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.services.Author.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, authors)
}

// GetByID handles GET /v1/authors/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	author, err := h.services.Author.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if author == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "author not found"})
		return
	}
	c.JSON(http.StatusOK, author)
}

// Create handles POST /v1/authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var req models.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validation.Email(req.Email); err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := validation.Role(req.Role); err != nil {
		respondError(c, h.log, err)
		return
	}

	author, err := h.services.Author.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, author)
}

// Update handles PATCH /v1/authors/:id
func (h *AuthorHandler) Update(c *gin.Context) {
	var patch models.AuthorPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if patch.Role != nil {
		if err := validation.Role(*patch.Role); err != nil {
			respondError(c, h.log, err)
			return
		}
	}

	author, err := h.services.Author.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, author)
}

// Remove handles DELETE /v1/authors/:id
func (h *AuthorHandler) Remove(c *gin.Context) {
	if err := h.services.Author.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
