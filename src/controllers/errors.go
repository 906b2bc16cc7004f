package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/theleywin/Backend-Blog/src/lib"
	"github.com/theleywin/Backend-Blog/src/services"
)

// respondError maps a service error to its status. Store faults and anything
// unclassified are logged here and answered with the generic fallback message.
func respondError(c *fiber.Ctx, log zerolog.Logger, err error, notFound, fallback string) error {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("No token, authorization denied"))
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("User not authorized"))
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse(notFound))
	case errors.Is(err, services.ErrUserExists):
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("User already exists"))
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid email or password"))
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(inputMessage(err)))
	}

	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg(fallback)
	return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse(fallback))
}

// inputMessage keeps only the human part of an invalid-input error
func inputMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, services.ErrInvalidInput.Error()+": "); i >= 0 {
		return msg[i+len(services.ErrInvalidInput.Error())+2:]
	}
	return "Invalid request"
}
