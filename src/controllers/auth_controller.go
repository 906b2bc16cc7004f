package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/theleywin/Backend-Blog/src/lib"
	"github.com/theleywin/Backend-Blog/src/services"
)

type AuthController struct {
	auth *services.AuthService
	log  zerolog.Logger
}

func NewAuthController(auth *services.AuthService, log zerolog.Logger) *AuthController {
	return &AuthController{auth: auth, log: log}
}

// Register creates an account; the email must not be registered yet
func (a *AuthController) Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	if err := a.auth.Register(c.Context(), req); err != nil {
		return respondError(c, a.log, err, "User not found", "Server error")
	}

	return c.Status(fiber.StatusCreated).JSON(lib.MessageResponse("User registered successfully"))
}

// Login checks the credentials and returns a signed token
func (a *AuthController) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	result, err := a.auth.Login(c.Context(), req)
	if err != nil {
		return respondError(c, a.log, err, "User not found", "Server error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Login successful",
		"username": result.Username,
		"token":    result.Token,
	})
}
