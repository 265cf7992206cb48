package mocks

import (
	"context"
	"sort"

	"github.com/newsroom-content-api/internal/models"
	"github.com/newsroom-content-api/internal/repository"
)

// MockArticleRepository is an in-memory mock of ArticleRepository.
// Insertion order is tracked so listings can mimic the index ordering.
type MockArticleRepository struct {
	Articles map[string]*models.Article
	order    []string

	// TitleHits and BodyHits are article IDs returned by the search
	// methods, in rank order. Only published articles are returned.
	TitleHits []string
	BodyHits  []string

	CreateError error
	UpdateError error
	ListError   error
	SearchError error
}

var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{Articles: make(map[string]*models.Article)}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Articles[article.ID] = article
	m.order = append(m.order, article.ID)
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Articles[article.ID]; !ok {
		return models.ErrNotFound
	}
	m.Articles[article.ID] = article
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.Articles[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.Articles, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	return m.Articles[id], nil
}

func (m *MockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	for _, id := range m.order {
		if m.Articles[id].Slug == slug {
			return m.Articles[id], nil
		}
	}
	return nil, nil
}

func (m *MockArticleRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	for _, a := range m.Articles {
		if a.Slug == slug && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockArticleRepository) List(ctx context.Context, status, categoryID string, limit *int) ([]*models.Article, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var out []*models.Article
	for _, a := range m.sortedByCreatedDesc() {
		if status != "" && a.Status != status {
			continue
		}
		if categoryID != "" && a.CategoryID != categoryID {
			continue
		}
		out = append(out, a)
	}
	if limit != nil && len(out) > *limit {
		out = out[:*limit]
	}
	return out, nil
}

func (m *MockArticleRepository) ListFeatured(ctx context.Context, limit int) ([]*models.Article, error) {
	var out []*models.Article
	for _, a := range m.sortedByCreatedDesc() {
		if a.IsFeatured && a.Status == models.StatusPublished {
			out = append(out, a)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockArticleRepository) ListByStatus(ctx context.Context, status string, limit int) ([]*models.Article, error) {
	var out []*models.Article
	for _, a := range m.sortedByCreatedDesc() {
		if a.Status == status {
			out = append(out, a)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockArticleRepository) SearchTitle(ctx context.Context, query string, limit int) ([]*models.Article, error) {
	return m.hits(m.TitleHits, limit)
}

func (m *MockArticleRepository) SearchBody(ctx context.Context, query string, limit int) ([]*models.Article, error) {
	return m.hits(m.BodyHits, limit)
}

func (m *MockArticleRepository) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	count := 0
	for _, a := range m.Articles {
		if a.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (m *MockArticleRepository) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	count := 0
	for _, a := range m.Articles {
		if a.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	return len(m.Articles), nil
}

func (m *MockArticleRepository) hits(ids []string, limit int) ([]*models.Article, error) {
	if m.SearchError != nil {
		return nil, m.SearchError
	}
	var out []*models.Article
	for _, id := range ids {
		a, ok := m.Articles[id]
		if ok && a.Status == models.StatusPublished {
			out = append(out, a)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockArticleRepository) sortedByCreatedDesc() []*models.Article {
	out := make([]*models.Article, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.Articles[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// MockCategoryRepository is an in-memory mock of CategoryRepository
type MockCategoryRepository struct {
	Categories  map[string]*models.Category
	order       []string
	CreateError error
}

var _ repository.CategoryRepository = (*MockCategoryRepository)(nil)

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[string]*models.Category)}
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Categories[category.ID] = category
	m.order = append(m.order, category.ID)
	return nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	if _, ok := m.Categories[category.ID]; !ok {
		return models.ErrNotFound
	}
	m.Categories[category.ID] = category
	return nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.Categories[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.Categories, id)
	return nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return m.Categories[id], nil
}

func (m *MockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	for _, id := range m.order {
		if c, ok := m.Categories[id]; ok && c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (m *MockCategoryRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	for _, c := range m.Categories {
		if c.Slug == slug && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	var out []*models.Category
	for _, id := range m.order {
		if c, ok := m.Categories[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockCategoryRepository) Count(ctx context.Context) (int, error) {
	return len(m.Categories), nil
}

// MockAuthorRepository is an in-memory mock of AuthorRepository
type MockAuthorRepository struct {
	Authors     map[string]*models.Author
	order       []string
	CreateError error
}

var _ repository.AuthorRepository = (*MockAuthorRepository)(nil)

func NewMockAuthorRepository() *MockAuthorRepository {
	return &MockAuthorRepository{Authors: make(map[string]*models.Author)}
}

func (m *MockAuthorRepository) Create(ctx context.Context, author *models.Author) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Authors[author.ID] = author
	m.order = append(m.order, author.ID)
	return nil
}

func (m *MockAuthorRepository) Update(ctx context.Context, author *models.Author) error {
	if _, ok := m.Authors[author.ID]; !ok {
		return models.ErrNotFound
	}
	m.Authors[author.ID] = author
	return nil
}

func (m *MockAuthorRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.Authors[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.Authors, id)
	return nil
}

func (m *MockAuthorRepository) GetByID(ctx context.Context, id string) (*models.Author, error) {
	return m.Authors[id], nil
}

func (m *MockAuthorRepository) GetByEmail(ctx context.Context, email string) (*models.Author, error) {
	for _, a := range m.Authors {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (m *MockAuthorRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	a, _ := m.GetByEmail(context.Background(), email)
	return a != nil, nil
}

func (m *MockAuthorRepository) List(ctx context.Context) ([]*models.Author, error) {
	var out []*models.Author
	for _, id := range m.order {
		if a, ok := m.Authors[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockAuthorRepository) Count(ctx context.Context) (int, error) {
	return len(m.Authors), nil
}

// MockMediaRepository is an in-memory mock of MediaRepository, covering
// both media records and the article-gallery join table
type MockMediaRepository struct {
	Media       map[string]*models.Media
	Attachments []*models.ArticleMedia
	order       []string
	CreateError error
}

var _ repository.MediaRepository = (*MockMediaRepository)(nil)

func NewMockMediaRepository() *MockMediaRepository {
	return &MockMediaRepository{Media: make(map[string]*models.Media)}
}

func (m *MockMediaRepository) Create(ctx context.Context, media *models.Media) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Media[media.ID] = media
	m.order = append(m.order, media.ID)
	return nil
}

func (m *MockMediaRepository) UpdateAlt(ctx context.Context, id, alt string) error {
	media, ok := m.Media[id]
	if !ok {
		return models.ErrNotFound
	}
	media.Alt = alt
	return nil
}

func (m *MockMediaRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.Media[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.Media, id)
	return nil
}

func (m *MockMediaRepository) GetByID(ctx context.Context, id string) (*models.Media, error) {
	return m.Media[id], nil
}

func (m *MockMediaRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Media, error) {
	var out []*models.Media
	for _, id := range ids {
		if media, ok := m.Media[id]; ok {
			out = append(out, media)
		}
	}
	return out, nil
}

func (m *MockMediaRepository) List(ctx context.Context) ([]*models.Media, error) {
	var out []*models.Media
	for _, id := range m.order {
		if media, ok := m.Media[id]; ok {
			out = append(out, media)
		}
	}
	return out, nil
}

func (m *MockMediaRepository) Count(ctx context.Context) (int, error) {
	return len(m.Media), nil
}

func (m *MockMediaRepository) Attach(ctx context.Context, att *models.ArticleMedia) error {
	for _, existing := range m.Attachments {
		if existing.ArticleID == att.ArticleID && existing.MediaID == att.MediaID {
			return nil
		}
	}
	m.Attachments = append(m.Attachments, att)
	return nil
}

func (m *MockMediaRepository) Detach(ctx context.Context, articleID, mediaID string) error {
	m.Attachments = filterAttachments(m.Attachments, func(a *models.ArticleMedia) bool {
		return a.ArticleID != articleID || a.MediaID != mediaID
	})
	return nil
}

func (m *MockMediaRepository) DetachAllByArticle(ctx context.Context, articleID string) error {
	m.Attachments = filterAttachments(m.Attachments, func(a *models.ArticleMedia) bool {
		return a.ArticleID != articleID
	})
	return nil
}

func (m *MockMediaRepository) DetachAllByMedia(ctx context.Context, mediaID string) error {
	m.Attachments = filterAttachments(m.Attachments, func(a *models.ArticleMedia) bool {
		return a.MediaID != mediaID
	})
	return nil
}

func (m *MockMediaRepository) ListAttachments(ctx context.Context, articleID string) ([]*models.ArticleMedia, error) {
	var out []*models.ArticleMedia
	for _, a := range m.Attachments {
		if a.ArticleID == articleID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func filterAttachments(in []*models.ArticleMedia, keep func(*models.ArticleMedia) bool) []*models.ArticleMedia {
	out := in[:0]
	for _, a := range in {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

// MockNewsletterRepository is an in-memory mock of NewsletterRepository
type MockNewsletterRepository struct {
	Subscribers map[string]*models.NewsletterSubscriber // keyed by email
	order       []string
	CreateError error
}

var _ repository.NewsletterRepository = (*MockNewsletterRepository)(nil)

func NewMockNewsletterRepository() *MockNewsletterRepository {
	return &MockNewsletterRepository{Subscribers: make(map[string]*models.NewsletterSubscriber)}
}

func (m *MockNewsletterRepository) Create(ctx context.Context, sub *models.NewsletterSubscriber) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Subscribers[sub.Email] = sub
	m.order = append(m.order, sub.Email)
	return nil
}

func (m *MockNewsletterRepository) DeleteByEmail(ctx context.Context, email string) error {
	delete(m.Subscribers, email)
	return nil
}

func (m *MockNewsletterRepository) GetByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	return m.Subscribers[email], nil
}

func (m *MockNewsletterRepository) List(ctx context.Context) ([]*models.NewsletterSubscriber, error) {
	var out []*models.NewsletterSubscriber
	for _, email := range m.order {
		if sub, ok := m.Subscribers[email]; ok {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (m *MockNewsletterRepository) Count(ctx context.Context) (int, error) {
	return len(m.Subscribers), nil
}

// NewMockRepositories bundles fresh mocks behind the Repositories struct
func NewMockRepositories() (*repository.Repositories, *MockArticleRepository, *MockCategoryRepository, *MockAuthorRepository, *MockMediaRepository, *MockNewsletterRepository) {
	articles := NewMockArticleRepository()
	categories := NewMockCategoryRepository()
	authors := NewMockAuthorRepository()
	media := NewMockMediaRepository()
	newsletter := NewMockNewsletterRepository()
	repos := &repository.Repositories{
		Article:    articles,
		Category:   categories,
		Author:     authors,
		Media:      media,
		Newsletter: newsletter,
	}
	return repos, articles, categories, authors, media, newsletter
}
