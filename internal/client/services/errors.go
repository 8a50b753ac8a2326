package services

import (
	"errors"

	"github.com/dmitrijs2005/micronotes/internal/client/models"
)

var (
	// ErrBlankNote rejects a note whose title or body is empty after trimming.
	ErrBlankNote = errors.New("title and body must not be blank")

	// ErrInvalidPatch rejects an edit that does not change exactly one field.
	ErrInvalidPatch = models.ErrInvalidPatch

	ErrNotAuthenticated = errors.New("not signed in")
)

// IsValidation reports whether err was raised by a client-side guard before
// any request was sent.
func IsValidation(err error) bool {
	return errors.Is(err, ErrBlankNote) || errors.Is(err, ErrInvalidPatch)
}
