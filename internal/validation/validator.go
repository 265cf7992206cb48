package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/newsroom-content-api/internal/models"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	colorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// Error is a request validation failure tied to a single field
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Status rejects values outside the article status enum. Runs before
// any storage-layer filtering.
func Status(status string) error {
	if status == "" {
		return nil
	}
	if !models.ValidStatuses[status] {
		return &Error{Field: "status", Message: "must be one of: draft, published, archived"}
	}
	return nil
}

// Role rejects values outside the author role enum
func Role(role string) error {
	if !models.ValidRoles[role] {
		return &Error{Field: "role", Message: "must be one of: admin, editor, writer"}
	}
	return nil
}

// Email checks basic email shape
func Email(email string) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return &Error{Field: "email", Message: "invalid email address"}
	}
	return nil
}

// Slug checks a caller-supplied slug for URL safety
func Slug(slug string) error {
	if slug == "" {
		return nil
	}
	if !slugRegex.MatchString(slug) {
		return &Error{Field: "slug", Message: "must be lowercase alphanumeric with single dashes"}
	}
	return nil
}

// Color checks an optional hex accent color
func Color(color string) error {
	if color == "" {
		return nil
	}
	if !colorRegex.MatchString(color) {
		return &Error{Field: "color", Message: "must be a hex color like #ff6600"}
	}
	return nil
}

// Limit parses an optional limit query parameter. An empty value means
// no limit; negative values are rejected.
func Limit(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &Error{Field: "limit", Message: "must be an integer"}
	}
	if n < 0 {
		return nil, &Error{Field: "limit", Message: "must not be negative"}
	}
	return &n, nil
}
