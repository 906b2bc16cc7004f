package repository

import (
	"context"

	"github.com/theleywin/Backend-Blog/src/models"
)

// PostRepository owns persisted posts together with their embedded likes and
// comments. Every method that changes a post does so as one atomic
// single-document operation; callers never need their own locking.
type PostRepository interface {
	// Create assigns ID and timestamps and stores the post. AuthorID is stored as given.
	Create(ctx context.Context, post *models.Post) error

	// FindByID returns ErrNotFound for unknown or malformed ids
	FindByID(ctx context.Context, id string) (*models.Post, error)

	FindAll(ctx context.Context) ([]models.Post, error)

	// FindByAuthor returns an empty slice, not an error, when the author has no posts
	FindByAuthor(ctx context.Context, authorID string) ([]models.Post, error)

	// Update merges the patch, preserving id, author, creation time and engagement
	Update(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error)

	// Delete removes the post and everything embedded in it
	Delete(ctx context.Context, id string) error

	// ToggleLike flips userID's membership in the like set and returns the post after the change
	ToggleLike(ctx context.Context, id string, userID string) (*models.Post, error)

	// AppendComment assigns the comment an ID and appends it, returning the post after the change
	AppendComment(ctx context.Context, id string, comment models.Comment) (*models.Post, error)
}

// UserRepository stores accounts. Email is unique.
type UserRepository interface {
	// Create returns ErrDuplicate when the email is already registered
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByIDs resolves many users at once; unknown ids are skipped
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
}
