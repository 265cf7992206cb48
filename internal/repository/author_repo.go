package repository

import (
	"context"
	"database/sql"

	"github.com/newsroom-content-api/internal/database"
	"github.com/newsroom-content-api/internal/models"
)

// authorRepo is the concrete implementation of AuthorRepository
type authorRepo struct {
	db *database.DB
}

// NewAuthorRepo creates a new author repository
func NewAuthorRepo(db *database.DB) AuthorRepository {
	return &authorRepo{db: db}
}

const authorColumns = "id, user_id, name, email, bio, avatar_id, role, created_at"

// Create inserts a new author
func (r *authorRepo) Create(ctx context.Context, author *models.Author) error {
	query := `
		INSERT INTO authors (id, user_id, name, email, bio, avatar_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		author.ID, nullString(author.UserID), author.Name, author.Email,
		nullString(author.Bio), nullString(author.AvatarID), author.Role, author.CreatedAt,
	)
	if isUniqueViolation(err) {
		return &models.DuplicateKeyError{Entity: "author", Field: "email", Value: author.Email}
	}
	return err
}

// Update writes all mutable columns of an author
func (r *authorRepo) Update(ctx context.Context, author *models.Author) error {
	query := `
		UPDATE authors
		SET name = $2, bio = $3, avatar_id = $4, role = $5
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		author.ID, author.Name, nullString(author.Bio), nullString(author.AvatarID), author.Role,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return models.ErrNotFound
	}
	return err
}

// Delete removes an author row
func (r *authorRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM authors WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return models.ErrNotFound
	}
	return err
}

// GetByID retrieves an author by ID
func (r *authorRepo) GetByID(ctx context.Context, id string) (*models.Author, error) {
	return r.scanOne(ctx, "SELECT "+authorColumns+" FROM authors WHERE id = $1", id)
}

// GetByEmail retrieves an author by unique email
func (r *authorRepo) GetByEmail(ctx context.Context, email string) (*models.Author, error) {
	return r.scanOne(ctx, "SELECT "+authorColumns+" FROM authors WHERE email = $1", email)
}

// EmailExists checks if an author with the given email exists
func (r *authorRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM authors WHERE email = $1)", email,
	).Scan(&exists)
	return exists, err
}

// List returns all authors ordered by name
func (r *authorRepo) List(ctx context.Context) ([]*models.Author, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+authorColumns+" FROM authors ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []*models.Author
	for rows.Next() {
		author, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}
	return authors, rows.Err()
}

// Count returns the total number of authors
func (r *authorRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM authors").Scan(&count)
	return count, err
}

func (r *authorRepo) scanOne(ctx context.Context, query string, arg interface{}) (*models.Author, error) {
	author, err := scanAuthor(r.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return author, nil
}

func scanAuthor(row rowScanner) (*models.Author, error) {
	var author models.Author
	var userID, bio, avatarID sql.NullString

	err := row.Scan(&author.ID, &userID, &author.Name, &author.Email, &bio, &avatarID, &author.Role, &author.CreatedAt)
	if err != nil {
		return nil, err
	}
	author.UserID = userID.String
	author.Bio = bio.String
	author.AvatarID = avatarID.String
	return &author, nil
}
