// Package ident generates opaque identifiers for new entities.
package ident

import "github.com/google/uuid"

// New returns a fresh random (version 4) UUID string.
func New() string {
	return uuid.NewString()
}
