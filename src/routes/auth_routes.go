package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-Blog/src/controllers"
)

// AuthRoutes sets up registration and login
func AuthRoutes(app *fiber.App, auth *controllers.AuthController) {
	group := app.Group("/api/auth")

	group.Post("/register", auth.Register)
	group.Post("/login", auth.Login)
}
