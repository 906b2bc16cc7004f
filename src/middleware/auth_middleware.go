package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-Blog/src/lib"
	"github.com/theleywin/Backend-Blog/src/models"
)

const userLocalKey = "user"

// ProtectRoute verifies the bearer token on every request and attaches the caller's identity to the context
func ProtectRoute(tokens *lib.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("No token, authorization denied"))
		}

		identity, err := tokens.VerifyJWT(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Token is not valid"))
		}

		c.Locals(userLocalKey, identity)
		return c.Next()
	}
}

// CurrentUser returns the identity ProtectRoute attached, if any
func CurrentUser(c *fiber.Ctx) (models.Identity, bool) {
	identity, ok := c.Locals(userLocalKey).(models.Identity)
	return identity, ok
}

// bearerToken extracts the token from "Bearer <token>". A header without the scheme is taken as the raw token.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if strings.EqualFold(header, "Bearer") {
		return ""
	}
	if len(header) >= 7 && strings.EqualFold(header[:7], "Bearer ") {
		header = header[7:]
	}
	return strings.TrimSpace(header)
}
