package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/newsroom-content-api/internal/auth"
	"github.com/newsroom-content-api/internal/models"
	"github.com/newsroom-content-api/internal/repository"
	"github.com/newsroom-content-api/internal/storage"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// authorService implements AuthorService
type authorService struct {
	repos *repository.Repositories
	store storage.BlobStore
	log   zerolog.Logger
}

func newAuthorService(repos *repository.Repositories, store storage.BlobStore, log zerolog.Logger) AuthorService {
	return &authorService{
		repos: repos,
		store: store,
		log:   log.With().Str("service", "author").Logger(),
	}
}

// List returns all authors with avatars resolved, original order preserved
func (s *authorService) List(ctx context.Context) ([]*models.HydratedAuthor, error) {
	authors, err := s.repos.Author.List(ctx)
	if err != nil {
		return nil, err
	}

	hydrated := make([]*models.HydratedAuthor, len(authors))
	g, gctx := errgroup.WithContext(ctx)
	for i, author := range authors {
		i, author := i, author
		g.Go(func() error {
			h, err := s.hydrateOne(gctx, author)
			if err != nil {
				return err
			}
			hydrated[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hydrated, nil
}

// GetByID returns an author with avatar resolved, or nil when absent
func (s *authorService) GetByID(ctx context.Context, id string) (*models.HydratedAuthor, error) {
	author, err := s.repos.Author.GetByID(ctx, id)
	if err != nil || author == nil {
		return nil, err
	}
	return s.hydrateOne(ctx, author)
}

// GetByEmail returns an author by unique email, or nil when absent
func (s *authorService) GetByEmail(ctx context.Context, email string) (*models.Author, error) {
	return s.repos.Author.GetByEmail(ctx, email)
}

// Create inserts a new author with a unique email
func (s *authorService) Create(ctx context.Context, req *models.CreateAuthorRequest) (*models.Author, error) {
	if _, ok := auth.ActorFrom(ctx); !ok {
		return nil, models.ErrNotAuthenticated
	}

	taken, err := s.repos.Author.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &models.DuplicateKeyError{Entity: "author", Field: "email", Value: req.Email}
	}

	author := &models.Author{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		Name:      req.Name,
		Email:     req.Email,
		Bio:       req.Bio,
		AvatarID:  req.AvatarID,
		Role:      req.Role,
		CreatedAt: time.Now(),
	}
	if err := s.repos.Author.Create(ctx, author); err != nil {
		return nil, err
	}

	s.log.Info().Str("author_id", author.ID).Str("role", author.Role).Msg("Author created")
	return author, nil
}

// Update applies a partial update to an author
func (s *authorService) Update(ctx context.Context, id string, patch *models.AuthorPatch) (*models.Author, error) {
	if _, ok := auth.ActorFrom(ctx); !ok {
		return nil, models.ErrNotAuthenticated
	}

	author, err := s.repos.Author.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.ErrNotFound
	}

	if patch.Name != nil {
		author.Name = *patch.Name
	}
	if patch.Bio != nil {
		author.Bio = *patch.Bio
	}
	if patch.AvatarID != nil {
		author.AvatarID = *patch.AvatarID
	}
	if patch.Role != nil {
		author.Role = *patch.Role
	}

	if err := s.repos.Author.Update(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// Remove deletes an author. Deletion is refused while any article still
// references them.
func (s *authorService) Remove(ctx context.Context, id string) error {
	if _, ok := auth.ActorFrom(ctx); !ok {
		return models.ErrNotAuthenticated
	}

	count, err := s.repos.Article.CountByAuthor(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &models.ReferentialIntegrityError{
			Entity: "author",
			Reason: fmt.Sprintf("%d article(s) still reference them", count),
		}
	}
	return s.repos.Author.Delete(ctx, id)
}

// Count returns the total number of authors
func (s *authorService) Count(ctx context.Context) (int, error) {
	return s.repos.Author.Count(ctx)
}

func (s *authorService) hydrateOne(ctx context.Context, author *models.Author) (*models.HydratedAuthor, error) {
	hydrated := &models.HydratedAuthor{Author: *author}
	if author.AvatarID == "" {
		return hydrated, nil
	}

	media, err := s.repos.Media.GetByID(ctx, author.AvatarID)
	if err != nil {
		return nil, err
	}
	if media == nil {
		// dangling avatar reference, tolerated
		return hydrated, nil
	}

	url, err := s.store.URL(ctx, media.StorageRef)
	if err != nil {
		s.log.Warn().Err(err).Str("storage_ref", media.StorageRef).Msg("Failed to resolve avatar URL")
		url = ""
	}
	hydrated.Avatar = &models.MediaWithURL{Media: *media, URL: url}
	return hydrated, nil
}
