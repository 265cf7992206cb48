package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/newsroom-content-api/internal/auth"
	"github.com/newsroom-content-api/internal/mocks"
	"github.com/newsroom-content-api/internal/models"
	"github.com/newsroom-content-api/internal/service"
	"github.com/rs/zerolog"
)

type fixture struct {
	services   *service.Services
	articles   *mocks.MockArticleRepository
	categories *mocks.MockCategoryRepository
	authors    *mocks.MockAuthorRepository
	media      *mocks.MockMediaRepository
	newsletter *mocks.MockNewsletterRepository
	store      *mocks.MockBlobStore
}

func newFixture() *fixture {
	repos, articles, categories, authors, media, newsletter := mocks.NewMockRepositories()
	store := mocks.NewMockBlobStore()
	return &fixture{
		services:   service.NewServices(repos, store, zerolog.Nop()),
		articles:   articles,
		categories: categories,
		authors:    authors,
		media:      media,
		newsletter: newsletter,
		store:      store,
	}
}

// actorCtx is an authenticated context acting as a fixed editor
func actorCtx() context.Context {
	return auth.WithActor(context.Background(), "editor-1")
}

func timePtr(t time.Time) *time.Time { return &t }

func intPtr(n int) *int { return &n }

func seedArticle(f *fixture, id, slug, status, categoryID string, createdAt time.Time) *models.Article {
	article := &models.Article{
		ID:         id,
		Title:      id,
		Slug:       slug,
		Content:    "content",
		CategoryID: categoryID,
		AuthorID:   "author-1",
		Status:     status,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	f.articles.Create(context.Background(), article)
	return article
}

func TestArticleService_ListFiltersByStatus(t *testing.T) {
	f := newFixture()
	base := time.Now()
	seedArticle(f, "a1", "a1", models.StatusPublished, "cat-1", base.Add(-3*time.Hour))
	seedArticle(f, "a2", "a2", models.StatusDraft, "cat-1", base.Add(-2*time.Hour))
	seedArticle(f, "a3", "a3", models.StatusPublished, "cat-2", base.Add(-1*time.Hour))

	got, err := f.services.Article.List(context.Background(), models.ArticleListOptions{Status: models.StatusPublished})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 published articles, got %d", len(got))
	}
	// most recent first
	if got[0].ID != "a3" || got[1].ID != "a1" {
		t.Errorf("Wrong order: got %s, %s", got[0].ID, got[1].ID)
	}
}

func TestArticleService_ListCombinedFilters(t *testing.T) {
	f := newFixture()
	base := time.Now()
	seedArticle(f, "a1", "a1", models.StatusPublished, "cat-1", base.Add(-3*time.Hour))
	seedArticle(f, "a2", "a2", models.StatusDraft, "cat-1", base.Add(-2*time.Hour))
	seedArticle(f, "a3", "a3", models.StatusPublished, "cat-2", base.Add(-1*time.Hour))

	got, err := f.services.Article.List(context.Background(), models.ArticleListOptions{
		Status:     models.StatusPublished,
		CategoryID: "cat-1",
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a1" {
		t.Fatalf("Expected only a1, got %d results", len(got))
	}
}

func TestArticleService_ListZeroLimitIsEmpty(t *testing.T) {
	f := newFixture()
	seedArticle(f, "a1", "a1", models.StatusPublished, "cat-1", time.Now())

	got, err := f.services.Article.List(context.Background(), models.ArticleListOptions{Limit: intPtr(0)})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Zero limit should yield an empty result, got %d", len(got))
	}
}

func TestArticleService_GetByCategoryPublishedOnly(t *testing.T) {
	f := newFixture()
	f.categories.Create(context.Background(), &models.Category{ID: "cat-1", Name: "Tech", Slug: "tech"})
	base := time.Now()
	seedArticle(f, "a1", "a1", models.StatusPublished, "cat-1", base.Add(-2*time.Hour))
	seedArticle(f, "a2", "a2", models.StatusDraft, "cat-1", base.Add(-1*time.Hour))

	got, err := f.services.Article.GetByCategory(context.Background(), "tech", nil)
	if err != nil {
		t.Fatalf("GetByCategory failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a1" {
		t.Fatalf("Expected only the published article, got %d results", len(got))
	}
}

func TestArticleService_GetByCategoryMissingIsEmpty(t *testing.T) {
	f := newFixture()

	got, err := f.services.Article.GetByCategory(context.Background(), "no-such-category", nil)
	if err != nil {
		t.Fatalf("GetByCategory failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Missing category should yield an empty result, got %d", len(got))
	}
}

func TestArticleService_SearchMergesAndDeduplicates(t *testing.T) {
	f := newFixture()
	base := time.Unix(1_700_000_000, 0)
	a1 := seedArticle(f, "a1", "a1", models.StatusPublished, "cat-1", base)
	a2 := seedArticle(f, "a2", "a2", models.StatusPublished, "cat-1", base)
	a3 := seedArticle(f, "a3", "a3", models.StatusPublished, "cat-1", base)
	a1.PublishedAt = timePtr(base.Add(300 * time.Second))
	a2.PublishedAt = timePtr(base.Add(200 * time.Second))
	a3.PublishedAt = timePtr(base.Add(100 * time.Second))

	// a2 matches both indexes; it must appear exactly once
	f.articles.TitleHits = []string{"a1", "a2"}
	f.articles.BodyHits = []string{"a2", "a3"}

	got, err := f.services.Article.Search(context.Background(), "silicon", nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 unique results, got %d", len(got))
	}
	seen := map[string]int{}
	for _, h := range got {
		seen[h.ID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("Article %s appeared %d times", id, n)
		}
	}
}

func TestArticleService_SearchOrdersByPublishedAtDesc(t *testing.T) {
	f := newFixture()
	base := time.Unix(1_700_000_000, 0)
	a1 := seedArticle(f, "a1", "a1", models.StatusPublished, "cat-1", base)
	a2 := seedArticle(f, "a2", "a2", models.StatusPublished, "cat-1", base)
	a3 := seedArticle(f, "a3", "a3", models.StatusPublished, "cat-1", base)
	seedArticle(f, "a4", "a4", models.StatusPublished, "cat-1", base)

	a1.PublishedAt = timePtr(base.Add(100 * time.Second))
	a2.PublishedAt = timePtr(base.Add(300 * time.Second))
	a3.PublishedAt = timePtr(base.Add(200 * time.Second))
	// a4 has no published_at and must sort last

	f.articles.TitleHits = []string{"a1", "a4"}
	f.articles.BodyHits = []string{"a2", "a3"}

	got, err := f.services.Article.Search(context.Background(), "anything", nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	want := []string{"a2", "a3", "a1", "a4"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d results, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestArticleService_SearchBlankQueryIsEmpty(t *testing.T) {
	f := newFixture()
	f.articles.TitleHits = []string{"a1"}
	seedArticle(f, "a1", "a1", models.StatusPublished, "cat-1", time.Now())

	got, err := f.services.Article.Search(context.Background(), "   ", nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Blank query should yield an empty result, got %d", len(got))
	}
}

func TestArticleService_SearchTruncatesToLimit(t *testing.T) {
	f := newFixture()
	base := time.Unix(1_700_000_000, 0)
	for _, id := range []string{"a1", "a2", "a3"} {
		a := seedArticle(f, id, id, models.StatusPublished, "cat-1", base)
		a.PublishedAt = timePtr(base)
	}
	f.articles.TitleHits = []string{"a1", "a2", "a3"}

	got, err := f.services.Article.Search(context.Background(), "query", intPtr(2))
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 results after truncation, got %d", len(got))
	}
}

func TestArticleService_HydrationPreservesOrderAndToleratesDanglingRefs(t *testing.T) {
	f := newFixture()
	f.categories.Create(context.Background(), &models.Category{ID: "cat-1", Name: "Tech", Slug: "tech"})
	f.authors.Create(context.Background(), &models.Author{ID: "author-1", Name: "A", Email: "a@example.com", Role: models.RoleWriter})

	base := time.Now()
	seedArticle(f, "a1", "a1", models.StatusPublished, "cat-1", base.Add(-2*time.Hour))
	// a2 references a category that no longer exists
	seedArticle(f, "a2", "a2", models.StatusPublished, "cat-gone", base.Add(-1*time.Hour))

	got, err := f.services.Article.List(context.Background(), models.ArticleListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(got))
	}
	if got[0].ID != "a2" || got[1].ID != "a1" {
		t.Errorf("Hydration changed ordering: got %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].Category != nil {
		t.Error("Dangling category reference should hydrate to nil")
	}
	if got[1].Category == nil || got[1].Category.Name != "Tech" {
		t.Error("Live category reference should hydrate")
	}
	if got[1].Author == nil || got[1].Author.Name != "A" {
		t.Error("Author should hydrate")
	}
}

func TestArticleService_HydrationResolvesFeaturedImage(t *testing.T) {
	f := newFixture()
	f.media.Create(context.Background(), &models.Media{ID: "m1", StorageRef: "ref-1", Filename: "hero.jpg"})
	f.store.Objects["ref-1"] = "https://storage.test/ref-1"

	article := seedArticle(f, "a1", "a1", models.StatusPublished, "cat-1", time.Now())
	article.FeaturedImageID = "m1"

	got, err := f.services.Article.GetByID(context.Background(), "a1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.FeaturedImage == nil {
		t.Fatal("Featured image should hydrate")
	}
	if got.FeaturedImage.URL != "https://storage.test/ref-1" {
		t.Errorf("Wrong URL: %s", got.FeaturedImage.URL)
	}
}

func TestArticleService_GetBySlugSkipsDanglingGalleryMedia(t *testing.T) {
	f := newFixture()
	seedArticle(f, "a1", "hello-world", models.StatusPublished, "cat-1", time.Now())
	f.media.Create(context.Background(), &models.Media{ID: "m1", StorageRef: "ref-1"})
	f.media.Attach(context.Background(), &models.ArticleMedia{ArticleID: "a1", MediaID: "m1", Order: 0})
	f.media.Attach(context.Background(), &models.ArticleMedia{ArticleID: "a1", MediaID: "m-gone", Order: 1})

	got, err := f.services.Article.GetBySlug(context.Background(), "hello-world")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if got == nil {
		t.Fatal("Article should be found")
	}
	if len(got.AttachedMedia) != 1 {
		t.Fatalf("Expected 1 surviving gallery item, got %d", len(got.AttachedMedia))
	}
	if got.AttachedMedia[0].ID != "m1" {
		t.Errorf("Wrong gallery item: %s", got.AttachedMedia[0].ID)
	}
}

func TestArticleService_CreateDerivesSlugAndDefaultsToDraft(t *testing.T) {
	f := newFixture()

	article, err := f.services.Article.Create(actorCtx(), &models.CreateArticleRequest{
		Title:      "Hello World",
		Content:    "some content here",
		CategoryID: "cat-1",
		AuthorID:   "author-1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if article.Slug != "hello-world" {
		t.Errorf("Expected slug hello-world, got %s", article.Slug)
	}
	if article.Status != models.StatusDraft {
		t.Errorf("New article should be a draft, got %s", article.Status)
	}
	if article.PublishedAt != nil {
		t.Error("New article should have no published_at")
	}
	if article.ReadingTimeMinutes != 1 {
		t.Errorf("Expected 1 minute reading time, got %d", article.ReadingTimeMinutes)
	}
}

func TestArticleService_CreateRejectsDuplicateSlug(t *testing.T) {
	f := newFixture()
	seedArticle(f, "a1", "hello-world", models.StatusPublished, "cat-1", time.Now())

	_, err := f.services.Article.Create(actorCtx(), &models.CreateArticleRequest{
		Title:      "Hello World",
		Content:    "content",
		CategoryID: "cat-1",
		AuthorID:   "author-1",
	})
	var dup *models.DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("Expected DuplicateKeyError, got %v", err)
	}
	if dup.Field != "slug" {
		t.Errorf("Expected slug conflict, got %s", dup.Field)
	}
}

func TestArticleService_CreateRequiresActor(t *testing.T) {
	f := newFixture()

	_, err := f.services.Article.Create(context.Background(), &models.CreateArticleRequest{
		Title:      "Hello World",
		Content:    "content",
		CategoryID: "cat-1",
		AuthorID:   "author-1",
	})
	if !errors.Is(err, models.ErrNotAuthenticated) {
		t.Fatalf("Expected ErrNotAuthenticated, got %v", err)
	}
}

func TestArticleService_UpdateRecomputesReadingTime(t *testing.T) {
	f := newFixture()
	seedArticle(f, "a1", "a1", models.StatusDraft, "cat-1", time.Now())

	longContent := ""
	for i := 0; i < 400; i++ {
		longContent += "word "
	}
	updated, err := f.services.Article.Update(actorCtx(), "a1", &models.ArticlePatch{Content: &longContent})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ReadingTimeMinutes != 2 {
		t.Errorf("Expected 2 minutes for 400 words, got %d", updated.ReadingTimeMinutes)
	}
}

func TestArticleService_PublishStampsPublishedAt(t *testing.T) {
	f := newFixture()
	seedArticle(f, "a1", "a1", models.StatusDraft, "cat-1", time.Now())

	published, err := f.services.Article.Publish(actorCtx(), "a1")
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if published.Status != models.StatusPublished {
		t.Errorf("Expected published status, got %s", published.Status)
	}
	if published.PublishedAt == nil {
		t.Fatal("Publish should stamp published_at")
	}
}

func TestArticleService_UnpublishRetainsPublishedAt(t *testing.T) {
	f := newFixture()
	seedArticle(f, "a1", "a1", models.StatusDraft, "cat-1", time.Now())

	published, err := f.services.Article.Publish(actorCtx(), "a1")
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	firstPublished := *published.PublishedAt

	draft, err := f.services.Article.Unpublish(actorCtx(), "a1")
	if err != nil {
		t.Fatalf("Unpublish failed: %v", err)
	}
	if draft.Status != models.StatusDraft {
		t.Errorf("Expected draft status, got %s", draft.Status)
	}
	if draft.PublishedAt == nil || !draft.PublishedAt.Equal(firstPublished) {
		t.Error("Unpublish should retain the original published_at")
	}
}

func TestArticleService_AttachMediaOrdersAndSkipsAttached(t *testing.T) {
	f := newFixture()
	seedArticle(f, "a1", "a1", models.StatusDraft, "cat-1", time.Now())

	if err := f.services.Article.AttachMedia(actorCtx(), "a1", []string{"m1", "m2"}); err != nil {
		t.Fatalf("First attach failed: %v", err)
	}
	// m2 is already attached and must keep its order
	if err := f.services.Article.AttachMedia(actorCtx(), "a1", []string{"m2", "m3"}); err != nil {
		t.Fatalf("Second attach failed: %v", err)
	}

	attachments, _ := f.media.ListAttachments(context.Background(), "a1")
	if len(attachments) != 3 {
		t.Fatalf("Expected 3 attachments, got %d", len(attachments))
	}
	wantOrder := map[string]int{"m1": 0, "m2": 1, "m3": 2}
	for _, att := range attachments {
		if wantOrder[att.MediaID] != att.Order {
			t.Errorf("Media %s: expected order %d, got %d", att.MediaID, wantOrder[att.MediaID], att.Order)
		}
	}
}

func TestArticleService_RemoveCascadesGallery(t *testing.T) {
	f := newFixture()
	seedArticle(f, "a1", "a1", models.StatusDraft, "cat-1", time.Now())
	f.media.Attach(context.Background(), &models.ArticleMedia{ArticleID: "a1", MediaID: "m1", Order: 0})

	if err := f.services.Article.Remove(actorCtx(), "a1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	attachments, _ := f.media.ListAttachments(context.Background(), "a1")
	if len(attachments) != 0 {
		t.Errorf("Gallery rows should be removed with the article, %d remain", len(attachments))
	}
	if a, _ := f.articles.GetByID(context.Background(), "a1"); a != nil {
		t.Error("Article should be deleted")
	}
}

func TestArticleService_Lifecycle(t *testing.T) {
	f := newFixture()
	ctx := actorCtx()

	category, err := f.services.Category.Create(ctx, &models.CreateCategoryRequest{Name: "Tech"})
	if err != nil {
		t.Fatalf("Category create failed: %v", err)
	}
	if category.Slug != "tech" {
		t.Errorf("Expected slug tech, got %s", category.Slug)
	}

	author, err := f.services.Author.Create(ctx, &models.CreateAuthorRequest{
		Name: "A", Email: "a@example.com", Role: models.RoleWriter,
	})
	if err != nil {
		t.Fatalf("Author create failed: %v", err)
	}

	article, err := f.services.Article.Create(ctx, &models.CreateArticleRequest{
		Title:      "Hello World",
		Content:    "a few words of content",
		CategoryID: category.ID,
		AuthorID:   author.ID,
	})
	if err != nil {
		t.Fatalf("Article create failed: %v", err)
	}

	if _, err := f.services.Article.Publish(ctx, article.ID); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	detail, err := f.services.Article.GetBySlug(context.Background(), "hello-world")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if detail == nil {
		t.Fatal("Published article should be retrievable by slug")
	}
	if detail.Status != models.StatusPublished {
		t.Errorf("Expected published, got %s", detail.Status)
	}
	if detail.PublishedAt == nil {
		t.Error("published_at should be set")
	}
	if detail.Category == nil || detail.Category.Name != "Tech" {
		t.Error("Category should hydrate")
	}
	if detail.Author == nil || detail.Author.Name != "A" {
		t.Error("Author should hydrate")
	}
}
