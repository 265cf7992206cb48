package service

import (
	"regexp"
	"strings"
)

var (
	slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)
	wordSplitter   = regexp.MustCompile(`\s+`)
)

// readingSpeedWPM is the assumed average reading speed
const readingSpeedWPM = 200

// GenerateSlug derives a URL-safe slug from a display title: lowercase,
// runs of non-alphanumeric characters collapsed to a single dash,
// leading/trailing dashes trimmed. Idempotent on already-slug-like input.
func GenerateSlug(title string) string {
	slug := strings.ToLower(title)
	slug = slugSeparators.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// CalculateReadingTime estimates reading time in whole minutes from the
// content word count, rounding up with a minimum of one minute.
func CalculateReadingTime(content string) int {
	words := len(wordSplitter.Split(strings.TrimSpace(content), -1))
	minutes := (words + readingSpeedWPM - 1) / readingSpeedWPM
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
