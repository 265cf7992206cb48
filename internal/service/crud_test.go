package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/newsroom-content-api/internal/models"
)

func TestCategoryService_RemoveRefusedWhileReferenced(t *testing.T) {
	f := newFixture()
	f.categories.Create(context.Background(), &models.Category{ID: "cat-1", Name: "Tech", Slug: "tech"})
	seedArticle(f, "a1", "a1", models.StatusPublished, "cat-1", time.Now())

	err := f.services.Category.Remove(actorCtx(), "cat-1")
	var refErr *models.ReferentialIntegrityError
	if !errors.As(err, &refErr) {
		t.Fatalf("Expected ReferentialIntegrityError, got %v", err)
	}
	if c, _ := f.categories.GetByID(context.Background(), "cat-1"); c == nil {
		t.Error("Refused deletion must leave the category in place")
	}
}

func TestCategoryService_RemoveSucceedsWhenUnreferenced(t *testing.T) {
	f := newFixture()
	f.categories.Create(context.Background(), &models.Category{ID: "cat-1", Name: "Tech", Slug: "tech"})

	if err := f.services.Category.Remove(actorCtx(), "cat-1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if c, _ := f.categories.GetByID(context.Background(), "cat-1"); c != nil {
		t.Error("Category should be deleted")
	}
}

func TestCategoryService_CreateRejectsDuplicateSlug(t *testing.T) {
	f := newFixture()
	f.categories.Create(context.Background(), &models.Category{ID: "cat-1", Name: "Tech", Slug: "tech"})

	_, err := f.services.Category.Create(actorCtx(), &models.CreateCategoryRequest{Name: "Tech"})
	var dup *models.DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("Expected DuplicateKeyError, got %v", err)
	}
}

func TestAuthorService_CreateRejectsDuplicateEmail(t *testing.T) {
	f := newFixture()
	f.authors.Create(context.Background(), &models.Author{ID: "author-1", Email: "a@example.com", Role: models.RoleWriter})

	_, err := f.services.Author.Create(actorCtx(), &models.CreateAuthorRequest{
		Name: "Other", Email: "a@example.com", Role: models.RoleEditor,
	})
	var dup *models.DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("Expected DuplicateKeyError, got %v", err)
	}
	if dup.Field != "email" {
		t.Errorf("Expected email conflict, got %s", dup.Field)
	}
}

func TestAuthorService_RemoveRefusedWhileReferenced(t *testing.T) {
	f := newFixture()
	f.authors.Create(context.Background(), &models.Author{ID: "author-1", Email: "a@example.com", Role: models.RoleWriter})
	seedArticle(f, "a1", "a1", models.StatusPublished, "cat-1", time.Now())

	err := f.services.Author.Remove(actorCtx(), "author-1")
	var refErr *models.ReferentialIntegrityError
	if !errors.As(err, &refErr) {
		t.Fatalf("Expected ReferentialIntegrityError, got %v", err)
	}
}

func TestAuthorService_ListHydratesAvatars(t *testing.T) {
	f := newFixture()
	f.media.Create(context.Background(), &models.Media{ID: "m1", StorageRef: "ref-1"})
	f.store.Objects["ref-1"] = "https://storage.test/ref-1"
	f.authors.Create(context.Background(), &models.Author{ID: "author-1", Email: "a@example.com", AvatarID: "m1", Role: models.RoleWriter})
	f.authors.Create(context.Background(), &models.Author{ID: "author-2", Email: "b@example.com", AvatarID: "m-gone", Role: models.RoleWriter})

	got, err := f.services.Author.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 authors, got %d", len(got))
	}
	if got[0].Avatar == nil || got[0].Avatar.URL != "https://storage.test/ref-1" {
		t.Error("Live avatar should hydrate with a URL")
	}
	if got[1].Avatar != nil {
		t.Error("Dangling avatar reference should hydrate to nil")
	}
}

func TestMediaService_GenerateUploadTarget(t *testing.T) {
	f := newFixture()

	target, err := f.services.Media.GenerateUploadTarget(actorCtx(), "image/png")
	if err != nil {
		t.Fatalf("GenerateUploadTarget failed: %v", err)
	}
	if target.StorageRef == "" {
		t.Error("Upload target should carry a storage ref")
	}
	if target.UploadURL == "" {
		t.Error("Upload target should carry a signed URL")
	}
	if f.store.SignedCount != 1 {
		t.Errorf("Expected 1 signing call, got %d", f.store.SignedCount)
	}
}

func TestMediaService_GenerateUploadTargetRequiresActor(t *testing.T) {
	f := newFixture()

	_, err := f.services.Media.GenerateUploadTarget(context.Background(), "image/png")
	if !errors.Is(err, models.ErrNotAuthenticated) {
		t.Fatalf("Expected ErrNotAuthenticated, got %v", err)
	}
}

func TestMediaService_GetByIDMissingObjectHasEmptyURL(t *testing.T) {
	f := newFixture()
	f.media.Create(context.Background(), &models.Media{ID: "m1", StorageRef: "ref-gone"})

	got, err := f.services.Media.GetByID(context.Background(), "m1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.URL != "" {
		t.Errorf("Missing stored object should resolve to an empty URL, got %q", got.URL)
	}
}

func TestMediaService_RemoveDeletesBytesAndDetaches(t *testing.T) {
	f := newFixture()
	f.media.Create(context.Background(), &models.Media{ID: "m1", StorageRef: "ref-1"})
	f.store.Objects["ref-1"] = "https://storage.test/ref-1"
	f.media.Attach(context.Background(), &models.ArticleMedia{ArticleID: "a1", MediaID: "m1", Order: 0})

	if err := f.services.Media.Remove(actorCtx(), "m1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(f.store.Deleted) != 1 || f.store.Deleted[0] != "ref-1" {
		t.Error("Stored bytes should be deleted")
	}
	attachments, _ := f.media.ListAttachments(context.Background(), "a1")
	if len(attachments) != 0 {
		t.Error("Article associations should be removed with the media")
	}
	if m, _ := f.media.GetByID(context.Background(), "m1"); m != nil {
		t.Error("Media record should be deleted")
	}
}

func TestMediaService_RemoveToleratesStorageFailure(t *testing.T) {
	f := newFixture()
	f.media.Create(context.Background(), &models.Media{ID: "m1", StorageRef: "ref-1"})
	f.store.DeleteError = errors.New("bucket unavailable")

	if err := f.services.Media.Remove(actorCtx(), "m1"); err != nil {
		t.Fatalf("Storage failure should not block record deletion: %v", err)
	}
	if m, _ := f.media.GetByID(context.Background(), "m1"); m != nil {
		t.Error("Media record should be deleted despite the storage failure")
	}
}

func TestNewsletterService_SubscribeIsIdempotent(t *testing.T) {
	f := newFixture()

	first, err := f.services.Newsletter.Subscribe(context.Background(), "reader@example.com")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	second, err := f.services.Newsletter.Subscribe(context.Background(), "reader@example.com")
	if err != nil {
		t.Fatalf("Second subscribe failed: %v", err)
	}
	if first.ID != second.ID {
		t.Error("Re-subscribing should return the existing record")
	}
	if count, _ := f.newsletter.Count(context.Background()); count != 1 {
		t.Errorf("Expected 1 subscriber, got %d", count)
	}
}

func TestNewsletterService_UnsubscribeUnknownIsNoOp(t *testing.T) {
	f := newFixture()

	if err := f.services.Newsletter.Unsubscribe(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("Unsubscribing an unknown email should be a no-op, got %v", err)
	}
}
