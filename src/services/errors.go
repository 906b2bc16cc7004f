package services

import (
	"errors"
	"fmt"

	"github.com/theleywin/Backend-Blog/src/repository"
)

var (
	// ErrUnauthenticated indicates a missing or invalid credential
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden indicates the caller is authenticated but may not touch the resource
	ErrForbidden = errors.New("user not authorized")

	// ErrNotFound indicates the referenced post or user doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a required field is missing or empty
	ErrInvalidInput = errors.New("invalid input")

	// ErrPersistence indicates the store failed; details stay server-side
	ErrPersistence = errors.New("persistence error")

	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

// storeError classifies a repository failure for the caller
func storeError(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	// the only ids a store can reject are the caller's own
	if errors.Is(err, repository.ErrInvalidReference) {
		return fmt.Errorf("%s: %w: %w", op, ErrUnauthenticated, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}
