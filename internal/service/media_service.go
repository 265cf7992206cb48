package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/newsroom-content-api/internal/auth"
	"github.com/newsroom-content-api/internal/models"
	"github.com/newsroom-content-api/internal/repository"
	"github.com/newsroom-content-api/internal/storage"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// mediaService implements MediaService
type mediaService struct {
	repos *repository.Repositories
	store storage.BlobStore
	log   zerolog.Logger
}

func newMediaService(repos *repository.Repositories, store storage.BlobStore, log zerolog.Logger) MediaService {
	return &mediaService{
		repos: repos,
		store: store,
		log:   log.With().Str("service", "media").Logger(),
	}
}

// List returns all media records with URLs resolved, most recent first
func (s *mediaService) List(ctx context.Context) ([]*models.MediaWithURL, error) {
	items, err := s.repos.Media.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, items)
}

// GetByID returns a media record with its URL, or nil when absent
func (s *mediaService) GetByID(ctx context.Context, id string) (*models.MediaWithURL, error) {
	media, err := s.repos.Media.GetByID(ctx, id)
	if err != nil || media == nil {
		return nil, err
	}
	return &models.MediaWithURL{Media: *media, URL: s.resolveURL(ctx, media.StorageRef)}, nil
}

// GetByIDs returns the media records that still exist among the given
// ids, URLs resolved; missing ids are dropped
func (s *mediaService) GetByIDs(ctx context.Context, ids []string) ([]*models.MediaWithURL, error) {
	items, err := s.repos.Media.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, items)
}

// GenerateUploadTarget mints a fresh storage ref and a signed write URL.
// Step one of the two-step upload; the caller transfers the bytes and
// then registers the ref via Save.
func (s *mediaService) GenerateUploadTarget(ctx context.Context, contentType string) (*models.UploadTarget, error) {
	if _, ok := auth.ActorFrom(ctx); !ok {
		return nil, models.ErrNotAuthenticated
	}

	ref := uuid.New().String()
	url, err := s.store.SignedUploadURL(ctx, ref, contentType)
	if err != nil {
		return nil, err
	}
	return &models.UploadTarget{StorageRef: ref, UploadURL: url}, nil
}

// Save registers a transferred object as a media record. A failed
// registration after a successful transfer leaves orphaned bytes, which
// is acceptable cleanup debt.
func (s *mediaService) Save(ctx context.Context, req *models.SaveMediaRequest) (*models.Media, error) {
	if _, ok := auth.ActorFrom(ctx); !ok {
		return nil, models.ErrNotAuthenticated
	}

	media := &models.Media{
		ID:         uuid.New().String(),
		StorageRef: req.StorageRef,
		Filename:   req.Filename,
		MimeType:   req.MimeType,
		Size:       req.Size,
		Alt:        req.Alt,
		UploadedBy: req.UploadedBy,
		UploadedAt: time.Now(),
	}
	if err := s.repos.Media.Create(ctx, media); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("media_id", media.ID).
		Str("filename", media.Filename).
		Int64("size", media.Size).
		Msg("Media registered")
	return media, nil
}

// UpdateAlt sets the alt text of a media record
func (s *mediaService) UpdateAlt(ctx context.Context, id, alt string) (*models.Media, error) {
	if _, ok := auth.ActorFrom(ctx); !ok {
		return nil, models.ErrNotAuthenticated
	}

	if err := s.repos.Media.UpdateAlt(ctx, id, alt); err != nil {
		return nil, err
	}
	return s.repos.Media.GetByID(ctx, id)
}

// Remove deletes media: the stored bytes, then any article associations,
// then the record. Steps are independently recoverable; a storage delete
// failure only logs, since the record delete makes the bytes unreachable
// clutter rather than a dangling reference.
func (s *mediaService) Remove(ctx context.Context, id string) error {
	if _, ok := auth.ActorFrom(ctx); !ok {
		return models.ErrNotAuthenticated
	}

	media, err := s.repos.Media.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if media == nil {
		return models.ErrNotFound
	}

	if err := s.store.Delete(ctx, media.StorageRef); err != nil {
		s.log.Warn().Err(err).Str("storage_ref", media.StorageRef).Msg("Failed to delete stored bytes")
	}
	if err := s.repos.Media.DetachAllByMedia(ctx, id); err != nil {
		return err
	}
	return s.repos.Media.Delete(ctx, id)
}

// Count returns the total number of media records
func (s *mediaService) Count(ctx context.Context) (int, error) {
	return s.repos.Media.Count(ctx)
}

func (s *mediaService) resolveAll(ctx context.Context, items []*models.Media) ([]*models.MediaWithURL, error) {
	resolved := make([]*models.MediaWithURL, len(items))
	g, gctx := errgroup.WithContext(ctx)
	for i, media := range items {
		i, media := i, media
		g.Go(func() error {
			resolved[i] = &models.MediaWithURL{Media: *media, URL: s.resolveURL(gctx, media.StorageRef)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resolved, nil
}

func (s *mediaService) resolveURL(ctx context.Context, ref string) string {
	url, err := s.store.URL(ctx, ref)
	if err != nil {
		s.log.Warn().Err(err).Str("storage_ref", ref).Msg("Failed to resolve media URL")
		return ""
	}
	return url
}
