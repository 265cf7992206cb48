package repository

import (
	"context"
	"database/sql"

	"github.com/newsroom-content-api/internal/database"
	"github.com/newsroom-content-api/internal/models"
)

// newsletterRepo is the concrete implementation of NewsletterRepository
type newsletterRepo struct {
	db *database.DB
}

// NewNewsletterRepo creates a new newsletter repository
func NewNewsletterRepo(db *database.DB) NewsletterRepository {
	return &newsletterRepo{db: db}
}

// Create inserts a new subscriber
func (r *newsletterRepo) Create(ctx context.Context, sub *models.NewsletterSubscriber) error {
	query := `
		INSERT INTO newsletter_subscribers (id, email, subscribed_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, sub.ID, sub.Email, sub.SubscribedAt)
	if isUniqueViolation(err) {
		return &models.DuplicateKeyError{Entity: "subscriber", Field: "email", Value: sub.Email}
	}
	return err
}

// DeleteByEmail removes a subscriber; absent emails are a no-op
func (r *newsletterRepo) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM newsletter_subscribers WHERE email = $1", email)
	return err
}

// GetByEmail retrieves a subscriber by unique email
func (r *newsletterRepo) GetByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	var sub models.NewsletterSubscriber
	err := r.db.QueryRowContext(ctx,
		"SELECT id, email, subscribed_at FROM newsletter_subscribers WHERE email = $1", email,
	).Scan(&sub.ID, &sub.Email, &sub.SubscribedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// List returns subscribers, most recent first
func (r *newsletterRepo) List(ctx context.Context) ([]*models.NewsletterSubscriber, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, email, subscribed_at FROM newsletter_subscribers ORDER BY subscribed_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.NewsletterSubscriber
	for rows.Next() {
		var sub models.NewsletterSubscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.SubscribedAt); err != nil {
			return nil, err
		}
		subs = append(subs, &sub)
	}
	return subs, rows.Err()
}

// Count returns the total number of subscribers
func (r *newsletterRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM newsletter_subscribers").Scan(&count)
	return count, err
}
