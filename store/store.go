// Package store holds the persistence contracts for users and posts.
// Controllers depend on these interfaces; the GORM implementations live in
// this package and in-memory fakes back the tests.
package store

import (
	"errors"

	"github.com/inkpress/inkpress/models"
)

var (
	// ErrNotFound is returned when no record matches the given key.
	ErrNotFound = errors.New("store: record not found")
	// ErrDuplicateUsername is returned when registering an existing username.
	ErrDuplicateUsername = errors.New("store: username already exists")
	// ErrValidation is returned when a required field is empty.
	ErrValidation = errors.New("store: required field is empty")
)

// UserStore persists registered identities.
type UserStore interface {
	Create(user *models.User) error
	FindByUsername(username string) (*models.User, error)
}

// PostFields are the mutable fields of a post. The author snapshot and the
// creation timestamp are not part of an update.
type PostFields struct {
	Title   string
	Snippet string
	Body    string
}

// PostStore persists blog posts.
type PostStore interface {
	Create(post *models.Post) error
	Get(id string) (*models.Post, error)
	// ListAll returns every post ordered by creation time, newest first.
	ListAll() ([]models.Post, error)
	Update(id string, fields PostFields) error
	// Delete is idempotent: removing an unknown id succeeds.
	Delete(id string) error
}

// ValidatePostFields enforces the required-field constraint shared by
// create and update.
func ValidatePostFields(f PostFields) error {
	if f.Title == "" || f.Snippet == "" || f.Body == "" {
		return ErrValidation
	}
	return nil
}
