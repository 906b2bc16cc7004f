package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/theleywin/Backend-Blog/src/models"
)

type postFixture struct {
	posts   *memoryPosts
	users   *memoryUsers
	blobs   *stubBlobStore
	service *PostService
}

func newPostFixture() postFixture {
	posts := newMemoryPosts()
	users := newMemoryUsers()
	blobs := &stubBlobStore{}
	return postFixture{
		posts:   posts,
		users:   users,
		blobs:   blobs,
		service: NewPostService(posts, users, blobs),
	}
}

func (f postFixture) createPost(t *testing.T, author models.Identity, title string) *models.PostDto {
	t.Helper()
	post, err := f.service.Create(context.Background(), author, CreatePostInput{Title: title, Content: title + " content"})
	require.NoError(t, err)
	return post
}

func TestPostService_CreatePopulatesAuthor(t *testing.T) {
	f := newPostFixture()
	ana := f.users.seedUser("ana")

	post, err := f.service.Create(context.Background(), ana, CreatePostInput{Title: "  Hello  ", Content: "World"})
	require.NoError(t, err)

	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, models.UserDto{ID: ana.ID, Username: "ana"}, post.Author)
	assert.Empty(t, post.Likes)
	assert.Empty(t, post.Comments)
	assert.Empty(t, post.Image)
}

func TestPostService_CreateWithImage(t *testing.T) {
	f := newPostFixture()
	ana := f.users.seedUser("ana")

	post, err := f.service.Create(context.Background(), ana, CreatePostInput{
		Title:   "Pic",
		Content: "Look",
		Image:   &multipart.FileHeader{Filename: "cat.png"},
	})
	require.NoError(t, err)

	assert.Equal(t, "stored-cat.png", post.Image)
	assert.Equal(t, []string{"stored-cat.png"}, f.blobs.saved)
}

func TestPostService_CreateValidatesBeforeUpload(t *testing.T) {
	f := newPostFixture()
	ana := f.users.seedUser("ana")

	tests := []struct {
		name  string
		input CreatePostInput
	}{
		{"missing title", CreatePostInput{Content: "body"}},
		{"missing content", CreatePostInput{Title: "title"}},
		{"whitespace only", CreatePostInput{Title: "  ", Content: "\t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.Image = &multipart.FileHeader{Filename: "x.png"}
			_, err := f.service.Create(context.Background(), ana, tt.input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, f.blobs.saved)
}

func TestPostService_CreateBlobFailureIsPersistence(t *testing.T) {
	f := newPostFixture()
	f.blobs.err = errors.New("disk full")
	ana := f.users.seedUser("ana")

	_, err := f.service.Create(context.Background(), ana, CreatePostInput{
		Title: "t", Content: "c", Image: &multipart.FileHeader{Filename: "x.png"},
	})
	assert.ErrorIs(t, err, ErrPersistence)

	all, err := f.service.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPostService_RequiresCaller(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	anonymous := models.Identity{}

	_, err := f.service.Create(ctx, anonymous, CreatePostInput{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = f.service.ListMine(ctx, anonymous)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = f.service.ToggleLike(ctx, anonymous, "post-1")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = f.service.AddComment(ctx, anonymous, "post-1", "hi")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.ErrorIs(t, f.service.Delete(ctx, anonymous, "post-1"), ErrUnauthenticated)
}

func TestPostService_ListAndListMine(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	ana := f.users.seedUser("ana")
	bob := f.users.seedUser("bob")
	carol := f.users.seedUser("carol")

	f.createPost(t, ana, "one")
	f.createPost(t, ana, "two")
	f.createPost(t, bob, "three")

	all, err := f.service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	for _, post := range all {
		assert.NotEmpty(t, post.Author.Username)
	}

	mine, err := f.service.ListMine(ctx, ana)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := f.service.ListMine(ctx, carol)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestPostService_GetMissingIsNotFound(t *testing.T) {
	f := newPostFixture()

	_, err := f.service.Get(context.Background(), "never-created")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostService_OnlyAuthorMayUpdateOrDelete(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	ana := f.users.seedUser("ana")
	bob := f.users.seedUser("bob")

	post := f.createPost(t, ana, "mine")
	title := "hijacked"

	_, err := f.service.Update(ctx, bob, post.ID, models.PostPatch{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, f.service.Delete(ctx, bob, post.ID), ErrForbidden)

	unchanged, err := f.service.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", unchanged.Title)

	title = "edited"
	updated, err := f.service.Update(ctx, ana, post.ID, models.PostPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Title)
	assert.Equal(t, ana.ID, updated.Author.ID)

	require.NoError(t, f.service.Delete(ctx, ana, post.ID))
	_, err = f.service.Get(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostService_UpdateAndDeleteMissing(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	ana := f.users.seedUser("ana")
	title := "x"

	_, err := f.service.Update(ctx, ana, "missing", models.PostPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.service.Delete(ctx, ana, "missing"), ErrNotFound)
}

func TestPostService_UpdateRejectsBlankFields(t *testing.T) {
	f := newPostFixture()
	ana := f.users.seedUser("ana")
	post := f.createPost(t, ana, "keep")

	blank := "   "
	_, err := f.service.Update(context.Background(), ana, post.ID, models.PostPatch{Content: &blank})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPostService_UpdateChecksOwnershipBeforeInput(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	ana := f.users.seedUser("ana")
	bob := f.users.seedUser("bob")
	post := f.createPost(t, ana, "guarded")

	blank := "  "
	_, err := f.service.Update(ctx, bob, post.ID, models.PostPatch{Title: &blank})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.service.Update(ctx, ana, "missing", models.PostPatch{Title: &blank})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostService_DeleteStoreFailureIsPersistence(t *testing.T) {
	repo := new(mockPostRepository)
	users := newMemoryUsers()
	ana := users.seedUser("ana")
	service := NewPostService(repo, users, nil)
	ctx := context.Background()

	repo.On("FindByID", ctx, "post-1").Return(&models.Post{ID: "post-1", AuthorID: ana.ID}, nil)
	repo.On("Delete", ctx, "post-1").Return(errors.New("connection reset"))

	err := service.Delete(ctx, ana, "post-1")
	assert.ErrorIs(t, err, ErrPersistence)
	assert.NotErrorIs(t, err, ErrNotFound)
	repo.AssertExpectations(t)
}

func TestPostService_ForbiddenNeverReachesStore(t *testing.T) {
	repo := new(mockPostRepository)
	users := newMemoryUsers()
	bob := users.seedUser("bob")
	service := NewPostService(repo, users, nil)
	ctx := context.Background()

	repo.On("FindByID", ctx, "post-1").Return(&models.Post{ID: "post-1", AuthorID: "someone-else"}, nil)

	title := "x"
	_, err := service.Update(ctx, bob, "post-1", models.PostPatch{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, service.Delete(ctx, bob, "post-1"), ErrForbidden)

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPostService_ListStoreFailure(t *testing.T) {
	repo := new(mockPostRepository)
	service := NewPostService(repo, newMemoryUsers(), nil)
	ctx := context.Background()

	repo.On("FindAll", ctx).Return(nil, errors.New("timeout"))

	_, err := service.List(ctx)
	assert.ErrorIs(t, err, ErrPersistence)
}
