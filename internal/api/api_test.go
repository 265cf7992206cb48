package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newsroom-content-api/internal/api"
	"github.com/newsroom-content-api/internal/auth"
	"github.com/newsroom-content-api/internal/config"
	"github.com/newsroom-content-api/internal/mocks"
	"github.com/newsroom-content-api/internal/models"
	"github.com/newsroom-content-api/internal/service"
	"github.com/rs/zerolog"
)

type testEnv struct {
	router   *gin.Engine
	authSvc  *auth.Service
	articles *mocks.MockArticleRepository
	cats     *mocks.MockCategoryRepository
	authors  *mocks.MockAuthorRepository
	media    *mocks.MockMediaRepository
	store    *mocks.MockBlobStore
}

func setupTestRouter() *testEnv {
	gin.SetMode(gin.TestMode)

	repos, articles, cats, authors, media, _ := mocks.NewMockRepositories()
	store := mocks.NewMockBlobStore()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Storage: config.StorageConfig{
			Bucket:        "test-bucket",
			URLTTL:        time.Hour,
			MaxUploadSize: 1024,
		},
		Auth: config.AuthConfig{
			Secret:       "test-secret",
			TokenTTL:     time.Hour,
			BootstrapKey: "bootstrap-key",
		},
	}

	log := zerolog.Nop()
	services := service.NewServices(repos, store, log)
	authSvc := auth.NewService(&cfg.Auth)
	router := api.NewRouter(services, authSvc, cfg, log)

	return &testEnv{
		router:   router,
		authSvc:  authSvc,
		articles: articles,
		cats:     cats,
		authors:  authors,
		media:    media,
		store:    store,
	}
}

// editorToken mints a token acting as a seeded editor
func (e *testEnv) editorToken(t *testing.T) string {
	t.Helper()
	editor := &models.Author{ID: "editor-1", Email: "editor@example.com", Role: models.RoleEditor}
	e.authors.Create(context.Background(), editor)
	token, err := e.authSvc.IssueToken(editor)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	return token
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestRouter()

	w := env.do("GET", "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestListArticles(t *testing.T) {
	env := setupTestRouter()
	env.articles.Create(context.Background(), &models.Article{
		ID: "a1", Title: "One", Slug: "one", Status: models.StatusPublished,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})

	w := env.do("GET", "/v1/articles", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var got []models.HydratedArticle
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("Invalid response body: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a1" {
		t.Errorf("Expected 1 article, got %d", len(got))
	}
}

func TestListArticlesRejectsBadStatus(t *testing.T) {
	env := setupTestRouter()

	w := env.do("GET", "/v1/articles?status=bogus", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestListArticlesRejectsNegativeLimit(t *testing.T) {
	env := setupTestRouter()

	w := env.do("GET", "/v1/articles?limit=-1", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestCreateArticleRequiresToken(t *testing.T) {
	env := setupTestRouter()

	w := env.do("POST", "/v1/articles", "", map[string]interface{}{
		"title": "Hello World", "content": "c", "category_id": "cat-1", "author_id": "author-1",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateArticleWithToken(t *testing.T) {
	env := setupTestRouter()
	token := env.editorToken(t)

	w := env.do("POST", "/v1/articles", token, map[string]interface{}{
		"title": "Hello World", "content": "c", "category_id": "cat-1", "author_id": "editor-1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var got models.Article
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("Invalid response body: %v", err)
	}
	if got.Slug != "hello-world" {
		t.Errorf("Expected derived slug hello-world, got %s", got.Slug)
	}
	if got.Status != models.StatusDraft {
		t.Errorf("Expected draft status, got %s", got.Status)
	}
}

func TestCreateArticleDuplicateSlugConflicts(t *testing.T) {
	env := setupTestRouter()
	token := env.editorToken(t)

	payload := map[string]interface{}{
		"title": "Hello World", "content": "c", "category_id": "cat-1", "author_id": "editor-1",
	}
	if w := env.do("POST", "/v1/articles", token, payload); w.Code != http.StatusCreated {
		t.Fatalf("First create failed: %d", w.Code)
	}
	if w := env.do("POST", "/v1/articles", token, payload); w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", w.Code)
	}
}

func TestGetArticleBySlugNotFound(t *testing.T) {
	env := setupTestRouter()

	w := env.do("GET", "/v1/articles/slug/no-such-article", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestPublishFlow(t *testing.T) {
	env := setupTestRouter()
	token := env.editorToken(t)
	env.articles.Create(context.Background(), &models.Article{
		ID: "a1", Title: "One", Slug: "one", Status: models.StatusDraft,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})

	w := env.do("POST", "/v1/articles/a1/publish", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var got models.Article
	json.Unmarshal(w.Body.Bytes(), &got)
	if got.Status != models.StatusPublished {
		t.Errorf("Expected published, got %s", got.Status)
	}
	if got.PublishedAt == nil {
		t.Error("published_at should be stamped")
	}
}

func TestDeleteReferencedCategoryUnprocessable(t *testing.T) {
	env := setupTestRouter()
	token := env.editorToken(t)
	env.cats.Create(context.Background(), &models.Category{ID: "cat-1", Name: "Tech", Slug: "tech"})
	env.articles.Create(context.Background(), &models.Article{
		ID: "a1", Slug: "a1", CategoryID: "cat-1", Status: models.StatusDraft,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})

	w := env.do("DELETE", "/v1/categories/cat-1", token, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMediaSaveRejectsOversize(t *testing.T) {
	env := setupTestRouter()
	token := env.editorToken(t)

	w := env.do("POST", "/v1/media", token, map[string]interface{}{
		"storage_ref": "ref-1", "filename": "big.bin", "mime_type": "application/octet-stream",
		"size": 4096, // above the 1024 test cap
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUploadURLFlow(t *testing.T) {
	env := setupTestRouter()
	token := env.editorToken(t)

	w := env.do("POST", "/v1/media/upload-url", token, map[string]interface{}{"content_type": "image/png"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var target models.UploadTarget
	json.Unmarshal(w.Body.Bytes(), &target)
	if target.StorageRef == "" || target.UploadURL == "" {
		t.Error("Upload target should carry a ref and a signed URL")
	}
}

func TestNewsletterSubscribePublic(t *testing.T) {
	env := setupTestRouter()

	w := env.do("POST", "/v1/newsletter/subscribe", "", map[string]interface{}{"email": "reader@example.com"})
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 without a token, got %d: %s", w.Code, w.Body.String())
	}

	w = env.do("POST", "/v1/newsletter/subscribe", "", map[string]interface{}{"email": "not-an-email"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for a bad email, got %d", w.Code)
	}
}

func TestIssueToken(t *testing.T) {
	env := setupTestRouter()
	env.authors.Create(context.Background(), &models.Author{
		ID: "editor-1", Email: "editor@example.com", Role: models.RoleEditor,
	})

	w := env.do("POST", "/v1/auth/token", "", map[string]interface{}{
		"email": "editor@example.com", "bootstrap_key": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Bad bootstrap key should be rejected, got %d", w.Code)
	}

	w = env.do("POST", "/v1/auth/token", "", map[string]interface{}{
		"email": "editor@example.com", "bootstrap_key": "bootstrap-key",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	claims, err := env.authSvc.VerifyToken(resp.Token)
	if err != nil {
		t.Fatalf("Issued token should verify: %v", err)
	}
	if claims.Subject != "editor-1" {
		t.Errorf("Token subject should be the author id, got %s", claims.Subject)
	}
}

func TestSearchEndpoint(t *testing.T) {
	env := setupTestRouter()
	now := time.Now()
	env.articles.Create(context.Background(), &models.Article{
		ID: "a1", Slug: "a1", Status: models.StatusPublished,
		PublishedAt: &now, CreatedAt: now, UpdatedAt: now,
	})
	env.articles.TitleHits = []string{"a1"}

	w := env.do("GET", "/v1/articles/search?q=silicon", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var got []models.HydratedArticle
	json.Unmarshal(w.Body.Bytes(), &got)
	if len(got) != 1 {
		t.Errorf("Expected 1 hit, got %d", len(got))
	}
}
