package validation_test

import (
	"testing"

	"github.com/newsroom-content-api/internal/validation"
)

func TestStatus(t *testing.T) {
	for _, status := range []string{"", "draft", "published", "archived"} {
		if err := validation.Status(status); err != nil {
			t.Errorf("Status(%q) should be valid: %v", status, err)
		}
	}
	if err := validation.Status("deleted"); err == nil {
		t.Error("Unknown status should be rejected")
	}
}

func TestRole(t *testing.T) {
	for _, role := range []string{"admin", "editor", "writer"} {
		if err := validation.Role(role); err != nil {
			t.Errorf("Role(%q) should be valid: %v", role, err)
		}
	}
	if err := validation.Role("superuser"); err == nil {
		t.Error("Unknown role should be rejected")
	}
	if err := validation.Role(""); err == nil {
		t.Error("Empty role should be rejected")
	}
}

func TestEmail(t *testing.T) {
	valid := []string{"a@example.com", "first.last+tag@sub.domain.org"}
	for _, email := range valid {
		if err := validation.Email(email); err != nil {
			t.Errorf("Email(%q) should be valid: %v", email, err)
		}
	}
	invalid := []string{"", "plainstring", "missing@tld", "@example.com"}
	for _, email := range invalid {
		if err := validation.Email(email); err == nil {
			t.Errorf("Email(%q) should be rejected", email)
		}
	}
}

func TestSlug(t *testing.T) {
	valid := []string{"", "tech", "hello-world", "2024-review"}
	for _, slug := range valid {
		if err := validation.Slug(slug); err != nil {
			t.Errorf("Slug(%q) should be valid: %v", slug, err)
		}
	}
	invalid := []string{"Hello-World", "double--dash", "-leading", "trailing-", "with spaces"}
	for _, slug := range invalid {
		if err := validation.Slug(slug); err == nil {
			t.Errorf("Slug(%q) should be rejected", slug)
		}
	}
}

func TestColor(t *testing.T) {
	valid := []string{"", "#fff", "#ff6600", "#ABCDEF"}
	for _, color := range valid {
		if err := validation.Color(color); err != nil {
			t.Errorf("Color(%q) should be valid: %v", color, err)
		}
	}
	invalid := []string{"ff6600", "#ff66", "#gggggg"}
	for _, color := range invalid {
		if err := validation.Color(color); err == nil {
			t.Errorf("Color(%q) should be rejected", color)
		}
	}
}

func TestLimit(t *testing.T) {
	limit, err := validation.Limit("")
	if err != nil || limit != nil {
		t.Error("Empty limit should parse to nil")
	}

	limit, err = validation.Limit("5")
	if err != nil || limit == nil || *limit != 5 {
		t.Error("Limit(\"5\") should parse to 5")
	}

	limit, err = validation.Limit("0")
	if err != nil || limit == nil || *limit != 0 {
		t.Error("Limit(\"0\") should parse to 0, not nil")
	}

	if _, err := validation.Limit("-1"); err == nil {
		t.Error("Negative limit should be rejected")
	}
	if _, err := validation.Limit("abc"); err == nil {
		t.Error("Non-numeric limit should be rejected")
	}
}
