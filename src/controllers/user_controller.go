package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/theleywin/Backend-Blog/src/middleware"
	"github.com/theleywin/Backend-Blog/src/services"
)

type UserController struct {
	auth *services.AuthService
	log  zerolog.Logger
}

func NewUserController(auth *services.AuthService, log zerolog.Logger) *UserController {
	return &UserController{auth: auth, log: log}
}

// GetUserProfile returns the authenticated user's own account, without the password
func (u *UserController) GetUserProfile(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	profile, err := u.auth.Profile(c.Context(), user)
	if err != nil {
		return respondError(c, u.log, err, "User not found", "Server error")
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}
