// Package auth resolves the acting author for a request. The actor is
// resolved once per request by the middleware and carried on the
// context; services only ever ask "who is the actor", they never parse
// tokens themselves.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/newsroom-content-api/internal/config"
	"github.com/newsroom-content-api/internal/models"
)

type contextKey struct{}

var actorKey contextKey

// Claims carries the actor identity inside the signed token
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies actor tokens
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token service from auth configuration
func NewService(cfg *config.AuthConfig) *Service {
	return &Service{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TokenTTL,
	}
}

// IssueToken mints a signed token whose subject is the author id
func (s *Service) IssueToken(author *models.Author) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: author.Email,
		Role:  author.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   author.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyToken parses and validates a token, returning its claims
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}

// WithActor returns a context carrying the acting author id
func WithActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorKey, actorID)
}

// ActorFrom returns the acting author id, if any. This is the single
// identity check mutations rely on.
func ActorFrom(ctx context.Context) (string, bool) {
	actorID, ok := ctx.Value(actorKey).(string)
	return actorID, ok && actorID != ""
}
