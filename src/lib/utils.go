package lib

import "github.com/gofiber/fiber/v2"

// Returns a map with a message key for API responses
func MessageResponse(message string) fiber.Map {
	return fiber.Map{
		"message": message,
	}
}
