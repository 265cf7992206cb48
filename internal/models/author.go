package models

import (
	"time"
)

// Author roles
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleWriter = "writer"
)

// ValidRoles defines allowed author roles
var ValidRoles = map[string]bool{
	RoleAdmin:  true,
	RoleEditor: true,
	RoleWriter: true,
}

// Author represents an author or editor. UserID optionally links the
// author to an external identity; AvatarID is a weak media reference.
type Author struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id,omitempty" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Bio       string    `json:"bio,omitempty" db:"bio"`
	AvatarID  string    `json:"avatar_id,omitempty" db:"avatar_id"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// HydratedAuthor is an author with its avatar media resolved
type HydratedAuthor struct {
	Author
	Avatar *MediaWithURL `json:"avatar"`
}

// CreateAuthorRequest is the payload for creating an author
type CreateAuthorRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Bio      string `json:"bio"`
	AvatarID string `json:"avatar_id"`
	Role     string `json:"role" binding:"required"`
	UserID   string `json:"user_id"`
}

// AuthorPatch is a partial author update
type AuthorPatch struct {
	Name     *string `json:"name"`
	Bio      *string `json:"bio"`
	AvatarID *string `json:"avatar_id"`
	Role     *string `json:"role"`
}
