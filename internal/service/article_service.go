package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/newsroom-content-api/internal/auth"
	"github.com/newsroom-content-api/internal/models"
	"github.com/newsroom-content-api/internal/repository"
	"github.com/newsroom-content-api/internal/storage"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Default result sizes for the curated selections and per-index search fetch
const (
	defaultFeaturedLimit = 5
	defaultLatestLimit   = 10
	defaultSearchFetch   = 20
)

// articleService implements ArticleService
type articleService struct {
	repos *repository.Repositories
	store storage.BlobStore
	log   zerolog.Logger
}

func newArticleService(repos *repository.Repositories, store storage.BlobStore, log zerolog.Logger) ArticleService {
	return &articleService{
		repos: repos,
		store: store,
		log:   log.With().Str("service", "article").Logger(),
	}
}

// ============ Queries ============

// List returns articles most-recently-created first, optionally filtered
// by status and category, truncated to the limit. A zero limit is an
// empty result; a nil limit is unbounded.
func (s *articleService) List(ctx context.Context, opts models.ArticleListOptions) ([]*models.HydratedArticle, error) {
	if emptyLimit(opts.Limit) {
		return []*models.HydratedArticle{}, nil
	}
	articles, err := s.repos.Article.List(ctx, opts.Status, opts.CategoryID, opts.Limit)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, articles)
}

// GetByID returns a single hydrated article, or nil when absent
func (s *articleService) GetByID(ctx context.Context, id string) (*models.HydratedArticle, error) {
	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil || article == nil {
		return nil, err
	}
	return s.hydrateOne(ctx, article)
}

// GetBySlug returns the article detail view: hydrated article plus its
// gallery media in stored order, dangling associations dropped.
func (s *articleService) GetBySlug(ctx context.Context, slug string) (*models.ArticleDetail, error) {
	article, err := s.repos.Article.GetBySlug(ctx, slug)
	if err != nil || article == nil {
		return nil, err
	}

	hydrated, err := s.hydrateOne(ctx, article)
	if err != nil {
		return nil, err
	}

	attachments, err := s.repos.Media.ListAttachments(ctx, article.ID)
	if err != nil {
		return nil, err
	}

	attached := make([]models.AttachedMedia, 0, len(attachments))
	for _, att := range attachments {
		media, err := s.repos.Media.GetByID(ctx, att.MediaID)
		if err != nil {
			return nil, err
		}
		if media == nil {
			// dangling join row, tolerated
			continue
		}
		attached = append(attached, models.AttachedMedia{
			MediaWithURL: models.MediaWithURL{Media: *media, URL: s.resolveURL(ctx, media.StorageRef)},
			Order:        att.Order,
		})
	}

	return &models.ArticleDetail{
		HydratedArticle: *hydrated,
		AttachedMedia:   attached,
	}, nil
}

// GetFeatured returns up to N published, featured articles, most recent first
func (s *articleService) GetFeatured(ctx context.Context, limit *int) ([]*models.HydratedArticle, error) {
	if emptyLimit(limit) {
		return []*models.HydratedArticle{}, nil
	}
	articles, err := s.repos.Article.ListFeatured(ctx, limitOr(limit, defaultFeaturedLimit))
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, articles)
}

// GetLatestPublished returns up to N published articles, most recent first
func (s *articleService) GetLatestPublished(ctx context.Context, limit *int) ([]*models.HydratedArticle, error) {
	if emptyLimit(limit) {
		return []*models.HydratedArticle{}, nil
	}
	articles, err := s.repos.Article.ListByStatus(ctx, models.StatusPublished, limitOr(limit, defaultLatestLimit))
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, articles)
}

// GetByCategory returns published articles in the category identified by
// slug, most recent first. A missing category yields an empty result.
func (s *articleService) GetByCategory(ctx context.Context, categorySlug string, limit *int) ([]*models.HydratedArticle, error) {
	if emptyLimit(limit) {
		return []*models.HydratedArticle{}, nil
	}
	category, err := s.repos.Category.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return []*models.HydratedArticle{}, nil
	}
	articles, err := s.repos.Article.List(ctx, models.StatusPublished, category.ID, limit)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, articles)
}

// Search merges the title and body full-text indexes over published
// articles. Both result sets are concatenated title-first, deduplicated
// by article id keeping the first occurrence, sorted by published_at
// descending (absent sorts last) and truncated to the limit. The merge
// deliberately ignores index relevance scores in favor of recency.
func (s *articleService) Search(ctx context.Context, query string, limit *int) ([]*models.HydratedArticle, error) {
	if strings.TrimSpace(query) == "" || emptyLimit(limit) {
		return []*models.HydratedArticle{}, nil
	}

	fetch := limitOr(limit, defaultSearchFetch)

	titleResults, err := s.repos.Article.SearchTitle(ctx, query, fetch)
	if err != nil {
		return nil, err
	}
	bodyResults, err := s.repos.Article.SearchBody(ctx, query, fetch)
	if err != nil {
		return nil, err
	}

	combined := append(titleResults, bodyResults...)
	seen := make(map[string]bool, len(combined))
	unique := combined[:0]
	for _, a := range combined {
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		unique = append(unique, a)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return publishedAtOrZero(unique[i]).After(publishedAtOrZero(unique[j]))
	})

	if limit != nil && len(unique) > *limit {
		unique = unique[:*limit]
	}

	return s.hydrate(ctx, unique)
}

// ============ Mutations ============

// Create inserts a new draft article. The slug is derived from the title
// when absent and must be unique; reading time is computed from content.
func (s *articleService) Create(ctx context.Context, req *models.CreateArticleRequest) (*models.Article, error) {
	if _, ok := auth.ActorFrom(ctx); !ok {
		return nil, models.ErrNotAuthenticated
	}

	slug := req.Slug
	if slug == "" {
		slug = GenerateSlug(req.Title)
	}

	taken, err := s.repos.Article.SlugExists(ctx, slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &models.DuplicateKeyError{Entity: "article", Field: "slug", Value: slug}
	}

	now := time.Now()
	article := &models.Article{
		ID:                 uuid.New().String(),
		Title:              req.Title,
		Slug:               slug,
		Excerpt:            req.Excerpt,
		Content:            req.Content,
		CategoryID:         req.CategoryID,
		AuthorID:           req.AuthorID,
		Status:             models.StatusDraft,
		FeaturedImageID:    req.FeaturedImageID,
		IsFeatured:         req.IsFeatured,
		ReadingTimeMinutes: CalculateReadingTime(req.Content),
		Tags:               req.Tags,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repos.Article.Create(ctx, article); err != nil {
		return nil, err
	}

	s.log.Info().Str("article_id", article.ID).Str("slug", article.Slug).Msg("Article created")
	return article, nil
}

// Update applies a partial update. Absent patch fields leave the stored
// value untouched; a slug change re-validates uniqueness excluding the
// record itself; a content change recomputes reading time.
func (s *articleService) Update(ctx context.Context, id string, patch *models.ArticlePatch) (*models.Article, error) {
	if _, ok := auth.ActorFrom(ctx); !ok {
		return nil, models.ErrNotAuthenticated
	}

	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, models.ErrNotFound
	}

	if patch.Slug != nil && *patch.Slug != article.Slug {
		taken, err := s.repos.Article.SlugExists(ctx, *patch.Slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &models.DuplicateKeyError{Entity: "article", Field: "slug", Value: *patch.Slug}
		}
		article.Slug = *patch.Slug
	}

	if patch.Title != nil {
		article.Title = *patch.Title
	}
	if patch.Excerpt != nil {
		article.Excerpt = *patch.Excerpt
	}
	if patch.Content != nil {
		article.Content = *patch.Content
		article.ReadingTimeMinutes = CalculateReadingTime(*patch.Content)
	}
	if patch.CategoryID != nil {
		article.CategoryID = *patch.CategoryID
	}
	if patch.FeaturedImageID != nil {
		article.FeaturedImageID = *patch.FeaturedImageID
	}
	if patch.IsFeatured != nil {
		article.IsFeatured = *patch.IsFeatured
	}
	if patch.Tags != nil {
		article.Tags = *patch.Tags
	}
	article.UpdatedAt = time.Now()

	if err := s.repos.Article.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Publish transitions an article to published, re-stamping published_at
func (s *articleService) Publish(ctx context.Context, id string) (*models.Article, error) {
	return s.transition(ctx, id, func(article *models.Article, now time.Time) {
		article.Status = models.StatusPublished
		article.PublishedAt = &now
	})
}

// Unpublish returns an article to draft. published_at is intentionally
// retained as first-published history.
func (s *articleService) Unpublish(ctx context.Context, id string) (*models.Article, error) {
	return s.transition(ctx, id, func(article *models.Article, now time.Time) {
		article.Status = models.StatusDraft
	})
}

// Archive transitions an article to archived
func (s *articleService) Archive(ctx context.Context, id string) (*models.Article, error) {
	return s.transition(ctx, id, func(article *models.Article, now time.Time) {
		article.Status = models.StatusArchived
	})
}

func (s *articleService) transition(ctx context.Context, id string, apply func(*models.Article, time.Time)) (*models.Article, error) {
	if _, ok := auth.ActorFrom(ctx); !ok {
		return nil, models.ErrNotAuthenticated
	}

	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, models.ErrNotFound
	}

	now := time.Now()
	apply(article, now)
	article.UpdatedAt = now

	if err := s.repos.Article.Update(ctx, article); err != nil {
		return nil, err
	}

	s.log.Info().Str("article_id", id).Str("status", article.Status).Msg("Article status changed")
	return article, nil
}

// Remove deletes an article and its gallery associations. Children go
// first so a partial failure leaves only retryable clutter.
func (s *articleService) Remove(ctx context.Context, id string) error {
	if _, ok := auth.ActorFrom(ctx); !ok {
		return models.ErrNotAuthenticated
	}

	if err := s.repos.Media.DetachAllByArticle(ctx, id); err != nil {
		return err
	}
	return s.repos.Article.Delete(ctx, id)
}

// AttachMedia appends gallery media to an article. Orders continue at
// max existing order + 1; already-attached media are skipped.
func (s *articleService) AttachMedia(ctx context.Context, articleID string, mediaIDs []string) error {
	if _, ok := auth.ActorFrom(ctx); !ok {
		return models.ErrNotAuthenticated
	}

	article, err := s.repos.Article.GetByID(ctx, articleID)
	if err != nil {
		return err
	}
	if article == nil {
		return models.ErrNotFound
	}

	existing, err := s.repos.Media.ListAttachments(ctx, articleID)
	if err != nil {
		return err
	}

	attached := make(map[string]bool, len(existing))
	next := 0
	for _, att := range existing {
		attached[att.MediaID] = true
		if att.Order >= next {
			next = att.Order + 1
		}
	}

	for _, mediaID := range mediaIDs {
		if attached[mediaID] {
			continue
		}
		att := &models.ArticleMedia{ArticleID: articleID, MediaID: mediaID, Order: next}
		if err := s.repos.Media.Attach(ctx, att); err != nil {
			return err
		}
		attached[mediaID] = true
		next++
	}
	return nil
}

// DetachMedia removes a single gallery association
func (s *articleService) DetachMedia(ctx context.Context, articleID, mediaID string) error {
	if _, ok := auth.ActorFrom(ctx); !ok {
		return models.ErrNotAuthenticated
	}
	return s.repos.Media.Detach(ctx, articleID, mediaID)
}

// Count returns the total number of articles
func (s *articleService) Count(ctx context.Context) (int, error) {
	return s.repos.Article.Count(ctx)
}

// ============ Hydration ============

// hydrate enriches a list of articles concurrently. Results are written
// by index so the output order always equals the input order.
func (s *articleService) hydrate(ctx context.Context, articles []*models.Article) ([]*models.HydratedArticle, error) {
	hydrated := make([]*models.HydratedArticle, len(articles))

	g, gctx := errgroup.WithContext(ctx)
	for i, article := range articles {
		i, article := i, article
		g.Go(func() error {
			h, err := s.hydrateOne(gctx, article)
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

// hydrateOne resolves an article's category, author and featured image.
// Dangling references resolve to nil rather than erroring.
func (s *articleService) hydrateOne(ctx context.Context, article *models.Article) (*models.HydratedArticle, error) {
	category, err := s.repos.Category.GetByID(ctx, article.CategoryID)
	if err != nil {
		return nil, err
	}
	author, err := s.repos.Author.GetByID(ctx, article.AuthorID)
	if err != nil {
		return nil, err
	}

	var featuredImage *models.MediaWithURL
	if article.FeaturedImageID != "" {
		media, err := s.repos.Media.GetByID(ctx, article.FeaturedImageID)
		if err != nil {
			return nil, err
		}
		if media != nil {
			featuredImage = &models.MediaWithURL{Media: *media, URL: s.resolveURL(ctx, media.StorageRef)}
		}
	}

	return &models.HydratedArticle{
		Article:       *article,
		Category:      category,
		Author:        author,
		FeaturedImage: featuredImage,
	}, nil
}

// resolveURL asks the blob store for an access URL. Resolution failures
// degrade to an absent URL; they never fail the read.
func (s *articleService) resolveURL(ctx context.Context, ref string) string {
	url, err := s.store.URL(ctx, ref)
	if err != nil {
		s.log.Warn().Err(err).Str("storage_ref", ref).Msg("Failed to resolve media URL")
		return ""
	}
	return url
}

// ============ Helpers ============

func emptyLimit(limit *int) bool {
	return limit != nil && *limit <= 0
}

func limitOr(limit *int, fallback int) int {
	if limit != nil {
		return *limit
	}
	return fallback
}

func publishedAtOrZero(article *models.Article) time.Time {
	if article.PublishedAt == nil {
		return time.Time{}
	}
	return *article.PublishedAt
}
