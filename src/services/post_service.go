package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/theleywin/Backend-Blog/src/models"
	"github.com/theleywin/Backend-Blog/src/repository"
)

// BlobStore persists an uploaded file and returns a reference to it
type BlobStore interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type CreatePostInput struct {
	Title   string
	Content string
	Image   *multipart.FileHeader
}

// PostService runs each post use case: authentication has already happened in
// the access guard, ownership is checked here, state changes go to the repository.
type PostService struct {
	posts      repository.PostRepository
	users      repository.UserRepository
	blobs      BlobStore
	engagement *Engagement
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository, blobs BlobStore) *PostService {
	return &PostService{
		posts:      posts,
		users:      users,
		blobs:      blobs,
		engagement: NewEngagement(posts, users),
	}
}

func (s *PostService) Create(ctx context.Context, caller models.Identity, input CreatePostInput) (*models.PostDto, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" || content == "" {
		return nil, invalidInput("title and content are required")
	}

	post := models.Post{
		Title:    title,
		Content:  content,
		AuthorID: caller.ID,
	}

	if input.Image != nil {
		if s.blobs == nil {
			return nil, fmt.Errorf("store image: %w: no blob store configured", ErrPersistence)
		}
		ref, err := s.blobs.Save(ctx, input.Image)
		if err != nil {
			return nil, fmt.Errorf("store image: %w: %w", ErrPersistence, err)
		}
		post.Image = ref
	}

	if err := s.posts.Create(ctx, &post); err != nil {
		return nil, storeError("create post", err)
	}

	return s.populate(ctx, post)
}

// List returns every post with its author populated
func (s *PostService) List(ctx context.Context) ([]models.PostDto, error) {
	posts, err := s.posts.FindAll(ctx)
	if err != nil {
		return nil, storeError("list posts", err)
	}
	return s.populateAll(ctx, posts)
}

// ListMine returns the caller's posts; an author without posts gets an empty list
func (s *PostService) ListMine(ctx context.Context, caller models.Identity) ([]models.PostDto, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	posts, err := s.posts.FindByAuthor(ctx, caller.ID)
	if err != nil {
		return nil, storeError("list user posts", err)
	}
	return s.populateAll(ctx, posts)
}

func (s *PostService) Get(ctx context.Context, id string) (*models.PostDto, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("get post", err)
	}
	return s.populate(ctx, *post)
}

func (s *PostService) Update(ctx context.Context, caller models.Identity, id string, patch models.PostPatch) (*models.PostDto, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	if _, err := s.authorize(ctx, caller, id); err != nil {
		return nil, err
	}

	patch, err := normalizePatch(patch)
	if err != nil {
		return nil, err
	}

	updated, err := s.posts.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError("update post", err)
	}
	return s.populate(ctx, *updated)
}

func (s *PostService) Delete(ctx context.Context, caller models.Identity, id string) error {
	if err := requireCaller(caller); err != nil {
		return err
	}

	if _, err := s.authorize(ctx, caller, id); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return storeError("delete post", err)
	}
	return nil
}

func (s *PostService) ToggleLike(ctx context.Context, caller models.Identity, id string) (LikeResult, error) {
	if err := requireCaller(caller); err != nil {
		return LikeResult{}, err
	}
	return s.engagement.ToggleLike(ctx, id, caller.ID)
}

func (s *PostService) AddComment(ctx context.Context, caller models.Identity, id, text string) ([]models.CommentDto, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	return s.engagement.AddComment(ctx, id, caller.ID, text)
}

func (s *PostService) GetComments(ctx context.Context, id string) ([]models.CommentDto, error) {
	return s.engagement.ListComments(ctx, id)
}

// authorize loads the post and checks the caller owns it
func (s *PostService) authorize(ctx context.Context, caller models.Identity, id string) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("get post", err)
	}
	if !CanMutate(caller, post) {
		return nil, ErrForbidden
	}
	return post, nil
}

func (s *PostService) populate(ctx context.Context, post models.Post) (*models.PostDto, error) {
	names, err := usernames(ctx, s.users, post)
	if err != nil {
		return nil, err
	}
	dto := toPostDto(post, names)
	return &dto, nil
}

func (s *PostService) populateAll(ctx context.Context, posts []models.Post) ([]models.PostDto, error) {
	names, err := usernames(ctx, s.users, posts...)
	if err != nil {
		return nil, err
	}

	dtos := make([]models.PostDto, 0, len(posts))
	for _, post := range posts {
		dtos = append(dtos, toPostDto(post, names))
	}
	return dtos, nil
}

func requireCaller(caller models.Identity) error {
	if strings.TrimSpace(caller.ID) == "" {
		return ErrUnauthenticated
	}
	return nil
}

// normalizePatch trims provided fields and rejects ones that would blank out required content
func normalizePatch(patch models.PostPatch) (models.PostPatch, error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return patch, invalidInput("title must not be empty")
		}
		patch.Title = &title
	}
	if patch.Content != nil {
		content := strings.TrimSpace(*patch.Content)
		if content == "" {
			return patch, invalidInput("content must not be empty")
		}
		patch.Content = &content
	}
	return patch, nil
}
