package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-Blog/src/controllers"
)

// PostRoutes sets up post routes. Reads are public; every mutation goes through protect.
func PostRoutes(app *fiber.App, posts *controllers.PostController, protect fiber.Handler) {
	post := app.Group("/api/blogs")

	post.Post("/create", protect, posts.CreatePost)
	post.Get("/", posts.GetPosts)
	post.Get("/user", protect, posts.GetUserPosts)
	post.Get("/:id", posts.GetPostByID)
	post.Put("/:id", protect, posts.UpdatePost)
	post.Delete("/:id", protect, posts.DeletePost)
	post.Post("/:id/like", protect, posts.ToggleLike)
	post.Post("/:id/comment", protect, posts.AddComment)
	post.Get("/:id/comments", posts.GetComments)
}
