package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/newsroom-content-api/internal/database"
	"github.com/newsroom-content-api/internal/models"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

const articleColumns = `
	id, title, slug, excerpt, content, category_id, author_id, status,
	featured_image_id, is_featured, reading_time_minutes, tags,
	published_at, created_at, updated_at
`

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (id, title, slug, excerpt, content, category_id, author_id, status,
			featured_image_id, is_featured, reading_time_minutes, tags, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Slug, nullString(article.Excerpt), article.Content,
		article.CategoryID, article.AuthorID, article.Status,
		nullString(article.FeaturedImageID), article.IsFeatured, article.ReadingTimeMinutes,
		pq.Array(article.Tags), article.PublishedAt, article.CreatedAt, article.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return &models.DuplicateKeyError{Entity: "article", Field: "slug", Value: article.Slug}
	}
	return err
}

// Update writes all mutable columns of an article
func (r *articleRepo) Update(ctx context.Context, article *models.Article) error {
	query := `
		UPDATE articles
		SET title = $2, slug = $3, excerpt = $4, content = $5, category_id = $6,
			status = $7, featured_image_id = $8, is_featured = $9,
			reading_time_minutes = $10, tags = $11, published_at = $12, updated_at = $13
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Slug, nullString(article.Excerpt), article.Content,
		article.CategoryID, article.Status, nullString(article.FeaturedImageID),
		article.IsFeatured, article.ReadingTimeMinutes, pq.Array(article.Tags),
		article.PublishedAt, article.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return &models.DuplicateKeyError{Entity: "article", Field: "slug", Value: article.Slug}
	}
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return models.ErrNotFound
	}
	return err
}

// Delete removes an article row
func (r *articleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return models.ErrNotFound
	}
	return err
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	query := fmt.Sprintf("SELECT %s FROM articles WHERE id = $1", articleColumns)
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetBySlug retrieves an article by its unique slug
func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	query := fmt.Sprintf("SELECT %s FROM articles WHERE slug = $1", articleColumns)
	return r.scanOne(r.db.QueryRowContext(ctx, query, slug))
}

// SlugExists checks if an article slug is taken, optionally excluding a record
func (r *articleRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM articles WHERE slug = $1 AND id <> $2)",
		slug, excludeID,
	).Scan(&exists)
	return exists, err
}

// List returns articles most-recently-created first, optionally filtered
// by status and category. A nil limit means unbounded.
func (r *articleRepo) List(ctx context.Context, status, categoryID string, limit *int) ([]*models.Article, error) {
	query := fmt.Sprintf("SELECT %s FROM articles WHERE 1=1", articleColumns)
	args := []interface{}{}

	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if categoryID != "" {
		args = append(args, categoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	if limit != nil {
		args = append(args, *limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	return r.scanMany(ctx, query, args...)
}

// ListFeatured returns featured articles in the given status via the
// (is_featured, status) composite index, most recent first
func (r *articleRepo) ListFeatured(ctx context.Context, limit int) ([]*models.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM articles
		WHERE is_featured = TRUE AND status = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, articleColumns)
	return r.scanMany(ctx, query, models.StatusPublished, limit)
}

// ListByStatus returns articles in the given status, most recent first
func (r *articleRepo) ListByStatus(ctx context.Context, status string, limit int) ([]*models.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM articles
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, articleColumns)
	return r.scanMany(ctx, query, status, limit)
}

// SearchTitle runs the title full-text index over published articles
func (r *articleRepo) SearchTitle(ctx context.Context, q string, limit int) ([]*models.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM articles
		WHERE status = '%s'
		  AND to_tsvector('english', title) @@ plainto_tsquery('english', $1)
		ORDER BY ts_rank(to_tsvector('english', title), plainto_tsquery('english', $1)) DESC
		LIMIT $2
	`, articleColumns, models.StatusPublished)
	return r.scanMany(ctx, query, q, limit)
}

// SearchBody runs the content full-text index over published articles
func (r *articleRepo) SearchBody(ctx context.Context, q string, limit int) ([]*models.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM articles
		WHERE status = '%s'
		  AND to_tsvector('english', content) @@ plainto_tsquery('english', $1)
		ORDER BY ts_rank(to_tsvector('english', content), plainto_tsquery('english', $1)) DESC
		LIMIT $2
	`, articleColumns, models.StatusPublished)
	return r.scanMany(ctx, query, q, limit)
}

// CountByCategory returns the number of articles referencing a category
func (r *articleRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM articles WHERE category_id = $1", categoryID,
	).Scan(&count)
	return count, err
}

// CountByAuthor returns the number of articles referencing an author
func (r *articleRepo) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM articles WHERE author_id = $1", authorID,
	).Scan(&count)
	return count, err
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *articleRepo) scanOne(row rowScanner) (*models.Article, error) {
	article, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

func (r *articleRepo) scanMany(ctx context.Context, query string, args ...interface{}) ([]*models.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var article models.Article
	var excerpt, featuredImageID sql.NullString
	var publishedAt sql.NullTime

	err := row.Scan(
		&article.ID, &article.Title, &article.Slug, &excerpt, &article.Content,
		&article.CategoryID, &article.AuthorID, &article.Status,
		&featuredImageID, &article.IsFeatured, &article.ReadingTimeMinutes,
		pq.Array(&article.Tags), &publishedAt, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	article.Excerpt = excerpt.String
	article.FeaturedImageID = featuredImageID.String
	if publishedAt.Valid {
		article.PublishedAt = &publishedAt.Time
	}
	return &article, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
