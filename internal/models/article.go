package models

import (
	"time"
)

// Article statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// ValidStatuses defines allowed article statuses
var ValidStatuses = map[string]bool{
	StatusDraft:     true,
	StatusPublished: true,
	StatusArchived:  true,
}

// Article represents an article in the system. CategoryID, AuthorID and
// FeaturedImageID are weak references: the referent may have been deleted
// and readers must null-check the hydrated result.
type Article struct {
	ID                 string     `json:"id" db:"id"`
	Title              string     `json:"title" db:"title"`
	Slug               string     `json:"slug" db:"slug"`
	Excerpt            string     `json:"excerpt,omitempty" db:"excerpt"`
	Content            string     `json:"content" db:"content"`
	CategoryID         string     `json:"category_id" db:"category_id"`
	AuthorID           string     `json:"author_id" db:"author_id"`
	Status             string     `json:"status" db:"status"`
	FeaturedImageID    string     `json:"featured_image_id,omitempty" db:"featured_image_id"`
	IsFeatured         bool       `json:"is_featured" db:"is_featured"`
	ReadingTimeMinutes int        `json:"reading_time_minutes" db:"reading_time_minutes"`
	Tags               []string   `json:"tags,omitempty" db:"tags"`
	PublishedAt        *time.Time `json:"published_at,omitempty" db:"published_at"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// HydratedArticle is an article enriched with its related entities.
// Missing referents hydrate to nil rather than erroring.
type HydratedArticle struct {
	Article
	Category      *Category     `json:"category"`
	Author        *Author       `json:"author"`
	FeaturedImage *MediaWithURL `json:"featured_image"`
}

// ArticleDetail is the single-article view: a hydrated article plus its
// attached gallery media, dangling associations dropped.
type ArticleDetail struct {
	HydratedArticle
	AttachedMedia []AttachedMedia `json:"attached_media"`
}

// ArticleListOptions filters the article listing
type ArticleListOptions struct {
	Status     string // empty means all statuses
	CategoryID string // empty means all categories
	Limit      *int   // nil means unbounded; 0 means empty result
}

// CreateArticleRequest is the payload for creating an article
type CreateArticleRequest struct {
	Title           string   `json:"title" binding:"required"`
	Slug            string   `json:"slug"`
	Excerpt         string   `json:"excerpt"`
	Content         string   `json:"content" binding:"required"`
	CategoryID      string   `json:"category_id" binding:"required"`
	AuthorID        string   `json:"author_id" binding:"required"`
	FeaturedImageID string   `json:"featured_image_id"`
	IsFeatured      bool     `json:"is_featured"`
	Tags            []string `json:"tags"`
}

// ArticlePatch is a partial update. A nil field leaves the stored value
// untouched; it is never interpreted as "set to null".
type ArticlePatch struct {
	Title           *string   `json:"title"`
	Slug            *string   `json:"slug"`
	Excerpt         *string   `json:"excerpt"`
	Content         *string   `json:"content"`
	CategoryID      *string   `json:"category_id"`
	FeaturedImageID *string   `json:"featured_image_id"`
	IsFeatured      *bool     `json:"is_featured"`
	Tags            *[]string `json:"tags"`
}

// AttachMediaRequest is the payload for attaching gallery media
type AttachMediaRequest struct {
	MediaIDs []string `json:"media_ids" binding:"required"`
}
