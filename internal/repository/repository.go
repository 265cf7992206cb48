package repository

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"github.com/newsroom-content-api/internal/database"
	"github.com/newsroom-content-api/internal/models"
)

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	List(ctx context.Context, status, categoryID string, limit *int) ([]*models.Article, error)
	ListFeatured(ctx context.Context, limit int) ([]*models.Article, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]*models.Article, error)
	SearchTitle(ctx context.Context, query string, limit int) ([]*models.Article, error)
	SearchBody(ctx context.Context, query string, limit int) ([]*models.Article, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
	CountByAuthor(ctx context.Context, authorID string) (int, error)
	Count(ctx context.Context) (int, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	List(ctx context.Context) ([]*models.Category, error)
	Count(ctx context.Context) (int, error)
}

// AuthorRepository defines the interface for author data operations
type AuthorRepository interface {
	Create(ctx context.Context, author *models.Author) error
	Update(ctx context.Context, author *models.Author) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Author, error)
	GetByEmail(ctx context.Context, email string) (*models.Author, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*models.Author, error)
	Count(ctx context.Context) (int, error)
}

// MediaRepository defines the interface for media records and the
// article-gallery join table
type MediaRepository interface {
	Create(ctx context.Context, media *models.Media) error
	UpdateAlt(ctx context.Context, id, alt string) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Media, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Media, error)
	List(ctx context.Context) ([]*models.Media, error)
	Count(ctx context.Context) (int, error)

	Attach(ctx context.Context, att *models.ArticleMedia) error
	Detach(ctx context.Context, articleID, mediaID string) error
	DetachAllByArticle(ctx context.Context, articleID string) error
	DetachAllByMedia(ctx context.Context, mediaID string) error
	ListAttachments(ctx context.Context, articleID string) ([]*models.ArticleMedia, error)
}

// NewsletterRepository defines the interface for newsletter subscribers
type NewsletterRepository interface {
	Create(ctx context.Context, sub *models.NewsletterSubscriber) error
	DeleteByEmail(ctx context.Context, email string) error
	GetByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	List(ctx context.Context) ([]*models.NewsletterSubscriber, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article    ArticleRepository
	Category   CategoryRepository
	Author     AuthorRepository
	Media      MediaRepository
	Newsletter NewsletterRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article:    NewArticleRepo(db),
		Category:   NewCategoryRepo(db),
		Author:     NewAuthorRepo(db),
		Media:      NewMediaRepo(db),
		Newsletter: NewNewsletterRepo(db),
	}
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation. Used as a backstop behind the service-level existence checks.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
