package repository

import (
	"context"
	"database/sql"

	"github.com/newsroom-content-api/internal/database"
	"github.com/newsroom-content-api/internal/models"
)

// categoryRepo is the concrete implementation of CategoryRepository
type categoryRepo struct {
	db *database.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *database.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

// Create inserts a new category
func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, description, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		category.ID, category.Name, category.Slug,
		nullString(category.Description), nullString(category.Color), category.CreatedAt,
	)
	if isUniqueViolation(err) {
		return &models.DuplicateKeyError{Entity: "category", Field: "slug", Value: category.Slug}
	}
	return err
}

// Update writes all mutable columns of a category
func (r *categoryRepo) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $2, slug = $3, description = $4, color = $5
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		category.ID, category.Name, category.Slug,
		nullString(category.Description), nullString(category.Color),
	)
	if isUniqueViolation(err) {
		return &models.DuplicateKeyError{Entity: "category", Field: "slug", Value: category.Slug}
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

// Delete removes a category row
func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return models.ErrNotFound
	}
	return err
}

// GetByID retrieves a category by ID
func (r *categoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return r.scanOne(ctx, "SELECT id, name, slug, description, color, created_at FROM categories WHERE id = $1", id)
}

// GetBySlug retrieves a category by its unique slug
func (r *categoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return r.scanOne(ctx, "SELECT id, name, slug, description, color, created_at FROM categories WHERE slug = $1", slug)
}

// SlugExists checks if a category slug is taken, optionally excluding a record
func (r *categoryRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1 AND id <> $2)",
		slug, excludeID,
	).Scan(&exists)
	return exists, err
}

// List returns all categories ordered by name
func (r *categoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, slug, description, color, created_at FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Count returns the total number of categories
func (r *categoryRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count)
	return count, err
}

func (r *categoryRepo) scanOne(ctx context.Context, query string, arg interface{}) (*models.Category, error) {
	category, err := scanCategory(r.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

func scanCategory(row rowScanner) (*models.Category, error) {
	var category models.Category
	var description, color sql.NullString

	err := row.Scan(&category.ID, &category.Name, &category.Slug, &description, &color, &category.CreatedAt)
	if err != nil {
		return nil, err
	}
	category.Description = description.String
	category.Color = color.String
	return &category, nil
}
