package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/theleywin/Backend-Blog/src/models"
	"github.com/theleywin/Backend-Blog/src/repository"
)

// memoryPosts is an in-process PostRepository with the same single-document semantics as the real stores
type memoryPosts struct {
	mu    sync.Mutex
	seq   int
	posts map[string]models.Post
}

func newMemoryPosts() *memoryPosts {
	return &memoryPosts{posts: make(map[string]models.Post)}
}

func (m *memoryPosts) Create(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	now := time.Now().UTC()
	post.ID = fmt.Sprintf("post-%d", m.seq)
	post.Likes = []string{}
	post.Comments = []models.Comment{}
	post.CreatedAt = now
	post.UpdatedAt = now
	m.posts[post.ID] = clonePost(*post)
	return nil
}

func (m *memoryPosts) FindByID(_ context.Context, id string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := clonePost(post)
	return &out, nil
}

func (m *memoryPosts) FindAll(_ context.Context) ([]models.Post, error) {
	return m.filter(func(models.Post) bool { return true }), nil
}

func (m *memoryPosts) FindByAuthor(_ context.Context, authorID string) ([]models.Post, error) {
	return m.filter(func(p models.Post) bool { return p.AuthorID == authorID }), nil
}

func (m *memoryPosts) filter(keep func(models.Post) bool) []models.Post {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []models.Post{}
	for _, post := range m.posts {
		if keep(post) {
			out = append(out, clonePost(post))
		}
	}
	return out
}

func (m *memoryPosts) Update(_ context.Context, id string, patch models.PostPatch) (*models.Post, error) {
	return m.mutate(id, func(p *models.Post, now time.Time) { p.Apply(patch, now) })
}

func (m *memoryPosts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *memoryPosts) ToggleLike(_ context.Context, id string, userID string) (*models.Post, error) {
	return m.mutate(id, func(p *models.Post, now time.Time) { p.ToggleLike(userID, now) })
}

func (m *memoryPosts) AppendComment(_ context.Context, id string, comment models.Comment) (*models.Post, error) {
	return m.mutate(id, func(p *models.Post, now time.Time) {
		comment.ID = fmt.Sprintf("%s-c%d", id, len(p.Comments)+1)
		p.AddComment(comment, now)
	})
}

func (m *memoryPosts) mutate(id string, change func(*models.Post, time.Time)) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	post = clonePost(post)
	change(&post, time.Now().UTC())
	m.posts[id] = post

	out := clonePost(post)
	return &out, nil
}

func clonePost(p models.Post) models.Post {
	p.Likes = append([]string{}, p.Likes...)
	p.Comments = append([]models.Comment{}, p.Comments...)
	return p
}

type memoryUsers struct {
	mu    sync.Mutex
	seq   int
	users map[string]models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[string]models.User)}
}

func (m *memoryUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	m.seq++
	user.ID = fmt.Sprintf("user-%d", m.seq)
	user.CreatedAt = time.Now().UTC()
	m.users[user.ID] = *user
	return nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			out := user
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (m *memoryUsers) FindByIDs(_ context.Context, ids []string) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []models.User{}
	for _, id := range ids {
		if user, ok := m.users[id]; ok {
			out = append(out, user)
		}
	}
	return out, nil
}

// seedUser stores a user directly and returns the identity a token for it would carry
func (m *memoryUsers) seedUser(username string) models.Identity {
	user := models.User{Username: username, Email: username + "@example.com", Password: "x"}
	if err := m.Create(context.Background(), &user); err != nil {
		panic(err)
	}
	return models.Identity{ID: user.ID, Username: user.Username}
}

type mockPostRepository struct {
	mock.Mock
}

func (m *mockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *mockPostRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *mockPostRepository) FindAll(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *mockPostRepository) FindByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *mockPostRepository) Update(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *mockPostRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPostRepository) ToggleLike(ctx context.Context, id string, userID string) (*models.Post, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *mockPostRepository) AppendComment(ctx context.Context, id string, comment models.Comment) (*models.Post, error) {
	args := m.Called(ctx, id, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

type stubBlobStore struct {
	saved []string
	err   error
}

func (s *stubBlobStore) Save(_ context.Context, file *multipart.FileHeader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	ref := "stored-" + file.Filename
	s.saved = append(s.saved, ref)
	return ref, nil
}
