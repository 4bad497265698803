package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/skilltrackhq/backend/internal/server/services"
)

// Locals keys set by the auth middleware.
const (
	localUserID = "userID"
	localEmail  = "email"
)

// authMiddleware authenticates the request via the access token cookie,
// falling back to an Authorization: Bearer header. Verified claims are
// stored in Locals for the handlers.
func authMiddleware(sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(accessTokenCookie)
		if token == "" {
			header := c.Get(fiber.HeaderAuthorization)
			if after, ok := strings.CutPrefix(header, "Bearer "); ok {
				token = after
			}
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{Message: "missing access token"})
		}

		claims, err := sessions.Authenticate(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{Message: "invalid or expired token"})
		}

		c.Locals(localUserID, claims.UserID)
		c.Locals(localEmail, claims.Email)

		return c.Next()
	}
}
