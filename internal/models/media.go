package models

import (
	"time"
)

// Media represents an uploaded file registered in the record store.
// StorageRef points at the blob store object holding the bytes.
type Media struct {
	ID         string    `json:"id" db:"id"`
	StorageRef string    `json:"storage_ref" db:"storage_ref"`
	Filename   string    `json:"filename" db:"filename"`
	MimeType   string    `json:"mime_type" db:"mime_type"`
	Size       int64     `json:"size" db:"size_bytes"`
	Alt        string    `json:"alt,omitempty" db:"alt"`
	UploadedBy string    `json:"uploaded_by,omitempty" db:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`
}

// MediaWithURL is a media record with a resolved access URL. URL is
// empty when the stored object no longer exists.
type MediaWithURL struct {
	Media
	URL string `json:"url,omitempty"`
}

// AttachedMedia is gallery media resolved for an article detail view,
// carrying the stored attachment order.
type AttachedMedia struct {
	MediaWithURL
	Order int `json:"order"`
}

// ArticleMedia is the article-gallery join row. MediaID is a weak
// reference; rows pointing at deleted media are dropped at read time.
type ArticleMedia struct {
	ArticleID string `json:"article_id" db:"article_id"`
	MediaID   string `json:"media_id" db:"media_id"`
	Order     int    `json:"order" db:"position"`
}

// SaveMediaRequest registers a transferred object as a media record.
// It is step two of the two-step upload: the caller first obtains an
// upload URL, transfers the bytes, then registers the storage ref here.
type SaveMediaRequest struct {
	StorageRef string `json:"storage_ref" binding:"required"`
	Filename   string `json:"filename" binding:"required"`
	MimeType   string `json:"mime_type" binding:"required"`
	Size       int64  `json:"size" binding:"required"`
	Alt        string `json:"alt"`
	UploadedBy string `json:"uploaded_by"`
}

// UploadTarget is step one of the two-step upload: a write URL plus the
// storage ref the caller must register after transferring the bytes.
type UploadTarget struct {
	StorageRef string `json:"storage_ref"`
	UploadURL  string `json:"upload_url"`
}
