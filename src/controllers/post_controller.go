package controllers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/theleywin/Backend-Blog/src/lib"
	"github.com/theleywin/Backend-Blog/src/middleware"
	"github.com/theleywin/Backend-Blog/src/models"
	"github.com/theleywin/Backend-Blog/src/services"
)

const postNotFound = "Blog not found"

type PostController struct {
	posts *services.PostService
	log   zerolog.Logger
}

func NewPostController(posts *services.PostService, log zerolog.Logger) *PostController {
	return &PostController{posts: posts, log: log}
}

// CreatePost creates a post for the authenticated user. Accepts JSON or a
// multipart form with an optional "image" file.
func (p *PostController) CreatePost(c *fiber.Ctx) error {
	type CreatePostRequest struct {
		Title   string `json:"title" form:"title"`
		Content string `json:"content" form:"content"`
	}

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	user, _ := middleware.CurrentUser(c)

	post, err := p.posts.Create(c.Context(), user, services.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Image:   uploadedImage(c),
	})
	if err != nil {
		return respondError(c, p.log, err, postNotFound, "Error creating blog")
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts returns every post with its author populated
func (p *PostController) GetPosts(c *fiber.Ctx) error {
	posts, err := p.posts.List(c.Context())
	if err != nil {
		return respondError(c, p.log, err, postNotFound, "Error fetching blogs")
	}
	return c.Status(fiber.StatusOK).JSON(posts)
}

// GetUserPosts returns the authenticated user's posts, an empty list if there are none
func (p *PostController) GetUserPosts(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	posts, err := p.posts.ListMine(c.Context(), user)
	if err != nil {
		return respondError(c, p.log, err, postNotFound, "Server error")
	}
	return c.Status(fiber.StatusOK).JSON(posts)
}

func (p *PostController) GetPostByID(c *fiber.Ctx) error {
	post, err := p.posts.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, p.log, err, postNotFound, "Error fetching blog")
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// UpdatePost changes title, content or image. Only the author may update.
func (p *PostController) UpdatePost(c *fiber.Ctx) error {
	var patch models.PostPatch
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&patch); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
		}
	}

	user, _ := middleware.CurrentUser(c)

	post, err := p.posts.Update(c.Context(), user, c.Params("id"), patch)
	if err != nil {
		return respondError(c, p.log, err, postNotFound, "Error updating blog")
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// DeletePost removes a post with its likes and comments. Only the author may delete.
func (p *PostController) DeletePost(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	if err := p.posts.Delete(c.Context(), user, c.Params("id")); err != nil {
		return respondError(c, p.log, err, postNotFound, "Error deleting blog")
	}
	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("Blog deleted successfully"))
}

// ToggleLike likes the post, or unlikes it if the caller already did
func (p *PostController) ToggleLike(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	result, err := p.posts.ToggleLike(c.Context(), user, c.Params("id"))
	if err != nil {
		return respondError(c, p.log, err, postNotFound, "Error toggling like")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// AddComment appends a comment and returns the post's comments
func (p *PostController) AddComment(c *fiber.Ctx) error {
	type CreateCommentRequest struct {
		Text string `json:"text" form:"text"`
	}

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	user, _ := middleware.CurrentUser(c)

	comments, err := p.posts.AddComment(c.Context(), user, c.Params("id"), req.Text)
	if err != nil {
		return respondError(c, p.log, err, postNotFound, "Error adding comment")
	}
	return c.Status(fiber.StatusCreated).JSON(comments)
}

// GetComments lists a post's comments with their authors populated
func (p *PostController) GetComments(c *fiber.Ctx) error {
	comments, err := p.posts.GetComments(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, p.log, err, postNotFound, "Error fetching comments")
	}
	return c.Status(fiber.StatusOK).JSON(comments)
}

// uploadedImage returns the "image" file of a multipart request, or nil
func uploadedImage(c *fiber.Ctx) *multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	if files := form.File["image"]; len(files) > 0 {
		return files[0]
	}
	return nil
}
