package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newsroom-content-api/internal/models"
	"github.com/newsroom-content-api/internal/validation"
	"github.com/rs/zerolog"
)

// respondError maps the domain error taxonomy onto HTTP statuses with
// human-readable messages for the UI layer
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var dupErr *models.DuplicateKeyError
	var refErr *models.ReferentialIntegrityError
	var valErr *validation.Error

	switch {
	case errors.Is(err, models.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &dupErr):
		c.JSON(http.StatusConflict, gin.H{"error": dupErr.Error()})
	case errors.As(err, &refErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": refErr.Error()})
	case errors.As(err, &valErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": valErr.Message, "field": valErr.Field})
	default:
		log.Error().Err(err).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
