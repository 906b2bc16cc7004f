package services

import (
	"context"
	"strings"
	"time"

	"github.com/theleywin/Backend-Blog/src/models"
	"github.com/theleywin/Backend-Blog/src/repository"
)

// LikeResult is the like state of a post after a toggle
type LikeResult struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}

// Engagement manages the likes and comments embedded in a post. Any
// authenticated user may engage with any post, including their own.
type Engagement struct {
	posts repository.PostRepository
	users repository.UserRepository
	now   func() time.Time
}

func NewEngagement(posts repository.PostRepository, users repository.UserRepository) *Engagement {
	return &Engagement{posts: posts, users: users, now: time.Now}
}

// ToggleLike adds userID to the post's likes if absent, removes it otherwise.
// If the store fails the toggle is not applied.
func (e *Engagement) ToggleLike(ctx context.Context, postID, userID string) (LikeResult, error) {
	post, err := e.posts.ToggleLike(ctx, postID, userID)
	if err != nil {
		return LikeResult{}, storeError("toggle like", err)
	}

	return LikeResult{
		Likes: len(post.Likes),
		Liked: post.LikedBy(userID),
	}, nil
}

// AddComment appends a comment and returns the post's full comment list
func (e *Engagement) AddComment(ctx context.Context, postID, userID, text string) ([]models.CommentDto, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		// a missing post is reported before the empty text
		if _, err := e.posts.FindByID(ctx, postID); err != nil {
			return nil, storeError("get post", err)
		}
		return nil, invalidInput("comment text is required")
	}

	post, err := e.posts.AppendComment(ctx, postID, models.Comment{
		UserID:    userID,
		Text:      text,
		CreatedAt: e.now().UTC(),
	})
	if err != nil {
		return nil, storeError("add comment", err)
	}

	return e.comments(ctx, *post)
}

func (e *Engagement) ListComments(ctx context.Context, postID string) ([]models.CommentDto, error) {
	post, err := e.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, storeError("get post", err)
	}

	return e.comments(ctx, *post)
}

func (e *Engagement) comments(ctx context.Context, post models.Post) ([]models.CommentDto, error) {
	names, err := usernames(ctx, e.users, models.Post{Comments: post.Comments})
	if err != nil {
		return nil, err
	}
	return toCommentDtos(post.Comments, names), nil
}
