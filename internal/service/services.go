package service

import (
	"context"

	"github.com/newsroom-content-api/internal/models"
	"github.com/newsroom-content-api/internal/repository"
	"github.com/newsroom-content-api/internal/storage"
	"github.com/rs/zerolog"
)

// ArticleService is the article query/aggregation core plus mutations
type ArticleService interface {
	List(ctx context.Context, opts models.ArticleListOptions) ([]*models.HydratedArticle, error)
	GetByID(ctx context.Context, id string) (*models.HydratedArticle, error)
	GetBySlug(ctx context.Context, slug string) (*models.ArticleDetail, error)
	GetFeatured(ctx context.Context, limit *int) ([]*models.HydratedArticle, error)
	GetLatestPublished(ctx context.Context, limit *int) ([]*models.HydratedArticle, error)
	GetByCategory(ctx context.Context, categorySlug string, limit *int) ([]*models.HydratedArticle, error)
	Search(ctx context.Context, query string, limit *int) ([]*models.HydratedArticle, error)

	Create(ctx context.Context, req *models.CreateArticleRequest) (*models.Article, error)
	Update(ctx context.Context, id string, patch *models.ArticlePatch) (*models.Article, error)
	Publish(ctx context.Context, id string) (*models.Article, error)
	Unpublish(ctx context.Context, id string) (*models.Article, error)
	Archive(ctx context.Context, id string) (*models.Article, error)
	Remove(ctx context.Context, id string) error
	AttachMedia(ctx context.Context, articleID string, mediaIDs []string) error
	DetachMedia(ctx context.Context, articleID, mediaID string) error
	Count(ctx context.Context) (int, error)
}

// CategoryService manages article categories
type CategoryService interface {
	List(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	Update(ctx context.Context, id string, patch *models.CategoryPatch) (*models.Category, error)
	Remove(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// AuthorService manages authors and editors
type AuthorService interface {
	List(ctx context.Context) ([]*models.HydratedAuthor, error)
	GetByID(ctx context.Context, id string) (*models.HydratedAuthor, error)
	GetByEmail(ctx context.Context, email string) (*models.Author, error)
	Create(ctx context.Context, req *models.CreateAuthorRequest) (*models.Author, error)
	Update(ctx context.Context, id string, patch *models.AuthorPatch) (*models.Author, error)
	Remove(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// MediaService manages uploads and media records
type MediaService interface {
	List(ctx context.Context) ([]*models.MediaWithURL, error)
	GetByID(ctx context.Context, id string) (*models.MediaWithURL, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.MediaWithURL, error)
	GenerateUploadTarget(ctx context.Context, contentType string) (*models.UploadTarget, error)
	Save(ctx context.Context, req *models.SaveMediaRequest) (*models.Media, error)
	UpdateAlt(ctx context.Context, id, alt string) (*models.Media, error)
	Remove(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// NewsletterService manages newsletter subscriptions
type NewsletterService interface {
	Subscribe(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	Unsubscribe(ctx context.Context, email string) error
	List(ctx context.Context) ([]*models.NewsletterSubscriber, error)
	Count(ctx context.Context) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Article    ArticleService
	Category   CategoryService
	Author     AuthorService
	Media      MediaService
	Newsletter NewsletterService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, store storage.BlobStore, log zerolog.Logger) *Services {
	return &Services{
		Article:    newArticleService(repos, store, log),
		Category:   newCategoryService(repos, log),
		Author:     newAuthorService(repos, store, log),
		Media:      newMediaService(repos, store, log),
		Newsletter: newNewsletterService(repos, log),
	}
}
