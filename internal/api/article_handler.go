package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newsroom-content-api/internal/models"
	"github.com/newsroom-content-api/internal/service"
	"github.com/newsroom-content-api/internal/validation"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// List handles GET /v1/articles
func (h *ArticleHandler) List(c *gin.Context) {
	status := c.Query("status")
	if err := validation.Status(status); err != nil {
		respondError(c, h.log, err)
		return
	}
	limit, err := validation.Limit(c.Query("limit"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	articles, err := h.services.Article.List(c.Request.Context(), models.ArticleListOptions{
		Status:     status,
		CategoryID: c.Query("category_id"),
		Limit:      limit,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// GetFeatured handles GET /v1/articles/featured
func (h *ArticleHandler) GetFeatured(c *gin.Context) {
	limit, err := validation.Limit(c.Query("limit"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	articles, err := h.services.Article.GetFeatured(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// GetLatestPublished handles GET /v1/articles/latest
func (h *ArticleHandler) GetLatestPublished(c *gin.Context) {
	limit, err := validation.Limit(c.Query("limit"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	articles, err := h.services.Article.GetLatestPublished(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// Search handles GET /v1/articles/search
func (h *ArticleHandler) Search(c *gin.Context) {
	limit, err := validation.Limit(c.Query("limit"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	articles, err := h.services.Article.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// GetByCategory handles GET /v1/categories/slug/:slug/articles
func (h *ArticleHandler) GetByCategory(c *gin.Context) {
	limit, err := validation.Limit(c.Query("limit"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	articles, err := h.services.Article.GetByCategory(c.Request.Context(), c.Param("slug"), limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// GetBySlug handles GET /v1/articles/slug/:slug
func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	article, err := h.services.Article.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	c.JSON(http.StatusOK, article)
}

// GetByID handles GET /v1/articles/:id
func (h *ArticleHandler) GetByID(c *gin.Context) {
	article, err := h.services.Article.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	c.JSON(http.StatusOK, article)
}

// Create handles POST /v1/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var req models.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validation.Slug(req.Slug); err != nil {
		respondError(c, h.log, err)
		return
	}

	article, err := h.services.Article.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// Update handles PATCH /v1/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	var patch models.ArticlePatch
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

	article, err := h.services.Article.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Publish handles POST /v1/articles/:id/publish
func (h *ArticleHandler) Publish(c *gin.Context) {
	h.statusTransition(c, h.services.Article.Publish)
}

// Unpublish handles POST /v1/articles/:id/unpublish
func (h *ArticleHandler) Unpublish(c *gin.Context) {
	h.statusTransition(c, h.services.Article.Unpublish)
}

// Archive handles POST /v1/articles/:id/archive
func (h *ArticleHandler) Archive(c *gin.Context) {
	h.statusTransition(c, h.services.Article.Archive)
}

func (h *ArticleHandler) statusTransition(c *gin.Context, fn func(ctx context.Context, id string) (*models.Article, error)) {
	article, err := fn(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Remove handles DELETE /v1/articles/:id
func (h *ArticleHandler) Remove(c *gin.Context) {
	if err := h.services.Article.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AttachMedia handles POST /v1/articles/:id/media
func (h *ArticleHandler) AttachMedia(c *gin.Context) {
	var req models.AttachMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Article.AttachMedia(c.Request.Context(), c.Param("id"), req.MediaIDs); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DetachMedia handles DELETE /v1/articles/:id/media/:media_id
func (h *ArticleHandler) DetachMedia(c *gin.Context) {
	if err := h.services.Article.DetachMedia(c.Request.Context(), c.Param("id"), c.Param("media_id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
