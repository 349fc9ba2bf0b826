package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tasktracker/internal/auth"
	"tasktracker/pkg/logger"
)

// UserIDKey is the locals key under which RequireAuth stores the verified
// caller identity.
const UserIDKey = "userID"

// RequireAuth verifies the bearer token on every request it guards. The
// exact failure is logged server-side; the client always sees the same
// 401 body regardless of cause.
func RequireAuth(verifier *auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := verifier.VerifyHeader(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			logger.SecurityLogger.Warn("Rejected unauthenticated request",
				zap.String("reason", err.Error()),
				zap.String("method", c.Method()),
				zap.String("url", c.OriginalURL()),
			)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication failed",
				"success": false,
				"status":  401,
			})
		}
		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}
