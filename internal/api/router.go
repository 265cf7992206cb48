package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newsroom-content-api/internal/auth"
	"github.com/newsroom-content-api/internal/config"
	"github.com/newsroom-content-api/internal/service"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, authSvc *auth.Service, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(actorMiddleware(authSvc))

	// Handlers
	articleHandler := NewArticleHandler(services, log)
	categoryHandler := NewCategoryHandler(services, log)
	authorHandler := NewAuthorHandler(services, log)
	mediaHandler := NewMediaHandler(services, cfg, log)
	newsletterHandler := NewNewsletterHandler(services, log)
	authHandler := NewAuthHandler(services, authSvc, cfg, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/stats", statsHandler(services))

	// API v1
	v1 := router.Group("/v1")
	{
		v1.POST("/auth/token", authHandler.IssueToken)

		articles := v1.Group("/articles")
		{
			articles.GET("", articleHandler.List)
			articles.GET("/featured", articleHandler.GetFeatured)
			articles.GET("/latest", articleHandler.GetLatestPublished)
			articles.GET("/search", articleHandler.Search)
			articles.GET("/slug/:slug", articleHandler.GetBySlug)
			articles.GET("/:id", articleHandler.GetByID)
			articles.POST("", articleHandler.Create)
			articles.PATCH("/:id", articleHandler.Update)
			articles.POST("/:id/publish", articleHandler.Publish)
			articles.POST("/:id/unpublish", articleHandler.Unpublish)
			articles.POST("/:id/archive", articleHandler.Archive)
			articles.DELETE("/:id", articleHandler.Remove)
			articles.POST("/:id/media", articleHandler.AttachMedia)
			articles.DELETE("/:id/media/:media_id", articleHandler.DetachMedia)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.GET("/slug/:slug", categoryHandler.GetBySlug)
			categories.GET("/slug/:slug/articles", articleHandler.GetByCategory)
			categories.GET("/:id", categoryHandler.GetByID)
			categories.POST("", categoryHandler.Create)
			categories.PATCH("/:id", categoryHandler.Update)
			categories.DELETE("/:id", categoryHandler.Remove)
		}

		authors := v1.Group("/authors")
		{
			authors.GET("", authorHandler.List)
			authors.GET("/:id", authorHandler.GetByID)
			authors.POST("", authorHandler.Create)
			authors.PATCH("/:id", authorHandler.Update)
			authors.DELETE("/:id", authorHandler.Remove)
		}

		media := v1.Group("/media")
		{
			media.GET("", mediaHandler.List)
			media.GET("/:id", mediaHandler.GetByID)
			media.POST("/upload-url", mediaHandler.GenerateUploadTarget)
			media.POST("", mediaHandler.Save)
			media.PATCH("/:id", mediaHandler.UpdateAlt)
			media.DELETE("/:id", mediaHandler.Remove)
		}

		newsletter := v1.Group("/newsletter")
		{
			newsletter.POST("/subscribe", newsletterHandler.Subscribe)
			newsletter.POST("/unsubscribe", newsletterHandler.Unsubscribe)
			newsletter.GET("/subscribers", newsletterHandler.List)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "newsroom-content-api",
	})
}

// statsHandler returns record counts
func statsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		articles, _ := services.Article.Count(ctx)
		categories, _ := services.Category.Count(ctx)
		authors, _ := services.Author.Count(ctx)
		media, _ := services.Media.Count(ctx)
		subscribers, _ := services.Newsletter.Count(ctx)

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"articles":    articles,
				"categories":  categories,
				"authors":     authors,
				"media":       media,
				"subscribers": subscribers,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// actorMiddleware resolves the acting author from a bearer token, once
// per request. Requests without a valid token proceed unauthenticated;
// mutations reject them downstream.
func actorMiddleware(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if len(header) > len(prefix) && header[:len(prefix)] == prefix {
			if claims, err := authSvc.VerifyToken(header[len(prefix):]); err == nil {
				ctx := auth.WithActor(c.Request.Context(), claims.Subject)
				c.Request = c.Request.WithContext(ctx)
			}
		}
		c.Next()
	}
}
