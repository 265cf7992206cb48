package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newsroom-content-api/internal/auth"
	"github.com/newsroom-content-api/internal/config"
	"github.com/newsroom-content-api/internal/service"
	"github.com/rs/zerolog"
)

// AuthHandler exchanges the bootstrap key for actor tokens
type AuthHandler struct {
	services *service.Services
	authSvc  *auth.Service
	cfg      *config.Config
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, authSvc *auth.Service, cfg *config.Config, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		authSvc:  authSvc,
		cfg:      cfg,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

type tokenRequest struct {
	Email        string `json:"email" binding:"required"`
	BootstrapKey string `json:"bootstrap_key" binding:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// IssueToken handles POST /v1/auth/token. The caller presents the
// deployment's bootstrap key and the email of a registered author, and
// receives a signed token acting as that author.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := h.cfg.Auth.BootstrapKey
	if key == "" || subtle.ConstantTimeCompare([]byte(req.BootstrapKey), []byte(key)) != 1 {
		h.log.Warn().Str("email", req.Email).Msg("Token request with bad bootstrap key")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid bootstrap key"})
		return
	}

	author, err := h.services.Author.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if author == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown author"})
		return
	}

	token, err := h.authSvc.IssueToken(author)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info().Str("author_id", author.ID).Msg("Actor token issued")
	c.JSON(http.StatusOK, tokenResponse{Token: token})
}
