package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daap14/agentflow/internal/validation"
)

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr string
	}{
		{name: "single char", slug: "a"},
		{name: "single digit", slug: "7"},
		{name: "simple", slug: "acme"},
		{name: "with hyphens", slug: "my-cool-org"},
		{name: "digits and letters", slug: "team-42-x"},
		{name: "max length", slug: strings.Repeat("a", 100)},
		{name: "empty", slug: "", wantErr: "between 1 and 100"},
		{name: "too long", slug: strings.Repeat("a", 101), wantErr: "between 1 and 100"},
		{name: "uppercase", slug: "Acme", wantErr: "lowercase"},
		{name: "underscore", slug: "invalid_slug", wantErr: "hyphens"},
		{name: "leading hyphen", slug: "-acme", wantErr: "start and end"},
		{name: "trailing hyphen", slug: "acme-", wantErr: "start and end"},
		{name: "consecutive hyphens", slug: "ac--me", wantErr: "single hyphens"},
		{name: "space", slug: "ac me", wantErr: "lowercase"},
		{name: "dot", slug: "acme.io", wantErr: "lowercase"},
		{name: "unicode", slug: "café", wantErr: "lowercase"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.ValidateSlug(tt.slug)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var fieldErr *validation.FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, "slug", fieldErr.Field)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.com", "test@example.com", "first.last+tag@sub.example.org", "x@y"}
	for _, email := range valid {
		assert.NoError(t, validation.ValidateEmail(email), email)
	}

	invalid := []string{"", "plainaddress", "@example.com", "user@", "a@b@c.com", "@"}
	for _, email := range invalid {
		err := validation.ValidateEmail(email)
		require.Error(t, err, email)
		assert.Equal(t, "Invalid email format", err.Error())
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, validation.ValidateName("Test Org"))
	assert.NoError(t, validation.ValidateName(strings.Repeat("A", 255)))
	// Length counts characters, not bytes.
	assert.NoError(t, validation.ValidateName(strings.Repeat("é", 255)))

	err := validation.ValidateName(strings.Repeat("A", 256))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "255 characters")

	err = validation.ValidateName("   ")
	require.Error(t, err)
	assert.Equal(t, "Name is required", err.Error())
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, validation.ValidatePassword("12345678"))
	assert.NoError(t, validation.ValidatePassword("a much longer passphrase"))

	assert.NoError(t, validation.ValidatePassword(strings.Repeat("p", 72)))

	err := validation.ValidatePassword("1234567")
	require.Error(t, err)
	assert.Equal(t, "Password must be at least 8 characters", err.Error())

	err = validation.ValidatePassword(strings.Repeat("p", 73))
	require.Error(t, err)
	assert.Equal(t, "Password must be at most 72 bytes", err.Error())

	// 37 two-byte runes: short in characters, too long in bytes.
	err = validation.ValidatePassword(strings.Repeat("é", 37))
	require.Error(t, err)
	assert.Equal(t, "Password must be at most 72 bytes", err.Error())
}
