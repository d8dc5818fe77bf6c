package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxSlugLength is the longest accepted slug.
	MaxSlugLength = 100
	// MaxNameLength is the longest accepted display name, in characters.
	MaxNameLength = 255
	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 8
	// MaxPasswordBytes is the longest password bcrypt can hash.
	MaxPasswordBytes = 72
)

// Lowercase alphanumerics separated by single hyphens.
var slugRegex = regexp.MustCompile(`^[a-z0-9](-?[a-z0-9])*$`)

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string { return e.Message }

// ValidateSlug checks slug syntax for organizations and projects.
// Returns nil when the slug is valid.
func ValidateSlug(slug string) error {
	if len(slug) < 1 || len(slug) > MaxSlugLength {
		return &FieldError{Field: "slug", Message: "Slug must be between 1 and 100 characters"}
	}
	if !slugRegex.MatchString(slug) {
		return &FieldError{
			Field:   "slug",
			Message: "Slug must contain only lowercase letters, numbers, and single hyphens, and must start and end with a letter or number",
		}
	}
	return nil
}

// ValidateEmail performs a basic syntax check: exactly one "@" with a
// non-empty local part and domain.
func ValidateEmail(email string) error {
	local, domain, found := strings.Cut(email, "@")
	if !found || local == "" || domain == "" || strings.Contains(domain, "@") {
		return &FieldError{Field: "email", Message: "Invalid email format"}
	}
	return nil
}

// ValidateName checks a display name for users, organizations, projects
// and API keys.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &FieldError{Field: "name", Message: "Name is required"}
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return &FieldError{Field: "name", Message: "Name must be 255 characters or less"}
	}
	return nil
}

// ValidatePassword enforces the password length bounds. The minimum counts
// characters, the maximum counts bytes.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return &FieldError{Field: "password", Message: "Password must be at least 8 characters"}
	}
	if len(password) > MaxPasswordBytes {
		return &FieldError{Field: "password", Message: "Password must be at most 72 bytes"}
	}
	return nil
}
