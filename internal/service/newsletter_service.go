package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/newsroom-content-api/internal/models"
	"github.com/newsroom-content-api/internal/repository"
	"github.com/rs/zerolog"
)

// newsletterService implements NewsletterService. Subscribe and
// Unsubscribe are public: readers manage their own subscription without
// an actor identity.
type newsletterService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newNewsletterService(repos *repository.Repositories, log zerolog.Logger) NewsletterService {
	return &newsletterService{
		repos: repos,
		log:   log.With().Str("service", "newsletter").Logger(),
	}
}

// Subscribe adds an email to the newsletter. Subscribing an already
// subscribed email returns the existing record.
func (s *newsletterService) Subscribe(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	existing, err := s.repos.Newsletter.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	sub := &models.NewsletterSubscriber{
		ID:           uuid.New().String(),
		Email:        email,
		SubscribedAt: time.Now(),
	}
	if err := s.repos.Newsletter.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.log.Info().Str("subscriber_id", sub.ID).Msg("Newsletter subscription added")
	return sub, nil
}

// Unsubscribe removes an email; unknown emails are a silent no-op
func (s *newsletterService) Unsubscribe(ctx context.Context, email string) error {
	return s.repos.Newsletter.DeleteByEmail(ctx, email)
}

// List returns subscribers, most recent first
func (s *newsletterService) List(ctx context.Context) ([]*models.NewsletterSubscriber, error) {
	return s.repos.Newsletter.List(ctx)
}

// Count returns the number of subscribers
func (s *newsletterService) Count(ctx context.Context) (int, error) {
	return s.repos.Newsletter.Count(ctx)
}
