package repository

import "errors"

var (
	// ErrNotFound indicates no document matched the id
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a unique constraint rejected the write
	ErrDuplicate = errors.New("duplicate key")

	// ErrInvalidReference indicates an id handed to the store is not valid for its id scheme
	ErrInvalidReference = errors.New("invalid reference")
)
