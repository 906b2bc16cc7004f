package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-Blog/src/controllers"
)

// UserRoutes sets up the authenticated user's profile route
func UserRoutes(app *fiber.App, users *controllers.UserController, protect fiber.Handler) {
	user := app.Group("/api/user", protect)

	user.Get("/me", users.GetUserProfile)
}
