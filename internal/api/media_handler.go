package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/newsroom-content-api/internal/config"
	"github.com/newsroom-content-api/internal/models"
	"github.com/newsroom-content-api/internal/service"
	"github.com/newsroom-content-api/internal/validation"
	"github.com/rs/zerolog"
)

// MediaHandler handles media endpoints
type MediaHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *MediaHandler {
	return &MediaHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "media").Logger(),
	}
}

// List handles GET /v1/media. An ids query parameter narrows the
// result to the given comma-separated media ids, missing ids dropped.
func (h *MediaHandler) List(c *gin.Context) {
	if raw := c.Query("ids"); raw != "" {
		media, err := h.services.Media.GetByIDs(c.Request.Context(), strings.Split(raw, ","))
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, media)
		return
	}

	media, err := h.services.Media.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

// GetByID handles GET /v1/media/:id
func (h *MediaHandler) GetByID(c *gin.Context) {
	media, err := h.services.Media.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if media == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}
	c.JSON(http.StatusOK, media)
}

type uploadURLRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// GenerateUploadTarget handles POST /v1/media/upload-url
func (h *MediaHandler) GenerateUploadTarget(c *gin.Context) {
	var req uploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target, err := h.services.Media.GenerateUploadTarget(c.Request.Context(), req.ContentType)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, target)
}

// Save handles POST /v1/media
func (h *MediaHandler) Save(c *gin.Context) {
	var req models.SaveMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Size > h.cfg.Storage.MaxUploadSize {
		respondError(c, h.log, &validation.Error{
			Field:   "size",
			Message: "exceeds the maximum upload size",
		})
		return
	}

	media, err := h.services.Media.Save(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, media)
}

type updateAltRequest struct {
	Alt string `json:"alt"`
}

// UpdateAlt handles PATCH /v1/media/:id
func (h *MediaHandler) UpdateAlt(c *gin.Context) {
	var req updateAltRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	media, err := h.services.Media.UpdateAlt(c.Request.Context(), c.Param("id"), req.Alt)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

// Remove handles DELETE /v1/media/:id
func (h *MediaHandler) Remove(c *gin.Context) {
	if err := h.services.Media.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
