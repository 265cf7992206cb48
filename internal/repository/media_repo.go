package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/newsroom-content-api/internal/database"
	"github.com/newsroom-content-api/internal/models"
)

// mediaRepo is the concrete implementation of MediaRepository
type mediaRepo struct {
	db *database.DB
}

// NewMediaRepo creates a new media repository
func NewMediaRepo(db *database.DB) MediaRepository {
	return &mediaRepo{db: db}
}

const mediaColumns = "id, storage_ref, filename, mime_type, size_bytes, alt, uploaded_by, uploaded_at"

// Create inserts a new media record
func (r *mediaRepo) Create(ctx context.Context, media *models.Media) error {
	query := `
		INSERT INTO media (id, storage_ref, filename, mime_type, size_bytes, alt, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		media.ID, media.StorageRef, media.Filename, media.MimeType, media.Size,
		nullString(media.Alt), nullString(media.UploadedBy), media.UploadedAt,
	)
	return err
}

// UpdateAlt sets the alt text of a media record
func (r *mediaRepo) UpdateAlt(ctx context.Context, id, alt string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE media SET alt = $2 WHERE id = $1", id, alt)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return models.ErrNotFound
	}
	return err
}

// Delete removes a media record
func (r *mediaRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM media WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return models.ErrNotFound
	}
	return err
}

// GetByID retrieves a media record by ID
func (r *mediaRepo) GetByID(ctx context.Context, id string) (*models.Media, error) {
	media, err := scanMedia(r.db.QueryRowContext(ctx,
		"SELECT "+mediaColumns+" FROM media WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return media, nil
}

// GetByIDs retrieves media records by ID; missing ids are simply absent
// from the result
func (r *mediaRepo) GetByIDs(ctx context.Context, ids []string) ([]*models.Media, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+mediaColumns+" FROM media WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMedia(rows)
}

// List returns all media records, most recently uploaded first
func (r *mediaRepo) List(ctx context.Context) ([]*models.Media, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+mediaColumns+" FROM media ORDER BY uploaded_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMedia(rows)
}

// Count returns the total number of media records
func (r *mediaRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM media").Scan(&count)
	return count, err
}

// Attach inserts an article-media association. Existing pairs are left
// untouched so repeated attaches stay idempotent.
func (r *mediaRepo) Attach(ctx context.Context, att *models.ArticleMedia) error {
	query := `
		INSERT INTO article_media (article_id, media_id, position)
		VALUES ($1, $2, $3)
		ON CONFLICT (article_id, media_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, att.ArticleID, att.MediaID, att.Order)
	return err
}

// Detach removes the single matching association
func (r *mediaRepo) Detach(ctx context.Context, articleID, mediaID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM article_media WHERE article_id = $1 AND media_id = $2",
		articleID, mediaID)
	return err
}

// DetachAllByArticle removes every association of an article
func (r *mediaRepo) DetachAllByArticle(ctx context.Context, articleID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM article_media WHERE article_id = $1", articleID)
	return err
}

// DetachAllByMedia removes every association of a media record
func (r *mediaRepo) DetachAllByMedia(ctx context.Context, mediaID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM article_media WHERE media_id = $1", mediaID)
	return err
}

// ListAttachments returns an article's associations in stored order
func (r *mediaRepo) ListAttachments(ctx context.Context, articleID string) ([]*models.ArticleMedia, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT article_id, media_id, position FROM article_media WHERE article_id = $1 ORDER BY position",
		articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var atts []*models.ArticleMedia
	for rows.Next() {
		var att models.ArticleMedia
		if err := rows.Scan(&att.ArticleID, &att.MediaID, &att.Order); err != nil {
			return nil, err
		}
		atts = append(atts, &att)
	}
	return atts, rows.Err()
}

func collectMedia(rows *sql.Rows) ([]*models.Media, error) {
	var items []*models.Media
	for rows.Next() {
		media, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, media)
	}
	return items, rows.Err()
}

func scanMedia(row rowScanner) (*models.Media, error) {
	var media models.Media
	var alt, uploadedBy sql.NullString

	err := row.Scan(&media.ID, &media.StorageRef, &media.Filename, &media.MimeType,
		&media.Size, &alt, &uploadedBy, &media.UploadedAt)
	if err != nil {
		return nil, err
	}
	media.Alt = alt.String
	media.UploadedBy = uploadedBy.String
	return &media, nil
}
