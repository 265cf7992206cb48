package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/newsroom-content-api/internal/auth"
	"github.com/newsroom-content-api/internal/models"
	"github.com/newsroom-content-api/internal/repository"
	"github.com/rs/zerolog"
)

// categoryService implements CategoryService
type categoryService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newCategoryService(repos *repository.Repositories, log zerolog.Logger) CategoryService {
	return &categoryService{
		repos: repos,
		log:   log.With().Str("service", "category").Logger(),
	}
}

// List returns all categories
func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.repos.Category.List(ctx)
}

// GetByID returns a category, or nil when absent
func (s *categoryService) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return s.repos.Category.GetByID(ctx, id)
}

// GetBySlug returns a category by its unique slug, or nil when absent
func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.repos.Category.GetBySlug(ctx, slug)
}

// Create inserts a new category with a unique slug
func (s *categoryService) Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	if _, ok := auth.ActorFrom(ctx); !ok {
		return nil, models.ErrNotAuthenticated
	}

	slug := req.Slug
	if slug == "" {
		slug = GenerateSlug(req.Name)
	}

	taken, err := s.repos.Category.SlugExists(ctx, slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &models.DuplicateKeyError{Entity: "category", Field: "slug", Value: slug}
	}

	category := &models.Category{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Color:       req.Color,
		CreatedAt:   time.Now(),
	}
	if err := s.repos.Category.Create(ctx, category); err != nil {
		return nil, err
	}

	s.log.Info().Str("category_id", category.ID).Str("slug", category.Slug).Msg("Category created")
	return category, nil
}

// Update applies a partial update; a slug change re-validates uniqueness
func (s *categoryService) Update(ctx context.Context, id string, patch *models.CategoryPatch) (*models.Category, error) {
	if _, ok := auth.ActorFrom(ctx); !ok {
		return nil, models.ErrNotAuthenticated
	}

	category, err := s.repos.Category.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, models.ErrNotFound
	}

	if patch.Slug != nil && *patch.Slug != category.Slug {
		taken, err := s.repos.Category.SlugExists(ctx, *patch.Slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &models.DuplicateKeyError{Entity: "category", Field: "slug", Value: *patch.Slug}
		}
		category.Slug = *patch.Slug
	}

	if patch.Name != nil {
		category.Name = *patch.Name
	}
	if patch.Description != nil {
		category.Description = *patch.Description
	}
	if patch.Color != nil {
		category.Color = *patch.Color
	}

	if err := s.repos.Category.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Remove deletes a category. Deletion is refused while any article still
// references it; the category and its articles are left unmodified.
func (s *categoryService) Remove(ctx context.Context, id string) error {
	if _, ok := auth.ActorFrom(ctx); !ok {
		return models.ErrNotAuthenticated
	}

	count, err := s.repos.Article.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &models.ReferentialIntegrityError{
			Entity: "category",
			Reason: fmt.Sprintf("%d article(s) still reference it, reassign them first", count),
		}
	}
	return s.repos.Category.Delete(ctx, id)
}

// Count returns the total number of categories
func (s *categoryService) Count(ctx context.Context) (int, error) {
	return s.repos.Category.Count(ctx)
}
