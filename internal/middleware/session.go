package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/academia-crecer/academia-api/internal/utils"
)

const sessionKeyPrefix = "admin_session:"

// SessionRequired rejects requests whose token is valid but whose server-side
// session has been revoked or has expired. Logout takes effect immediately
// this way, regardless of how long the token itself remains valid.
func SessionRequired(redisClient *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := SessionID(c)
		if sessionID == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "session required")
		}

		exists, err := redisClient.Exists(c.UserContext(), sessionKeyPrefix+sessionID).Result()
		if err != nil {
			return utils.SendError(c, fiber.StatusServiceUnavailable, "session store unavailable")
		}
		if exists == 0 {
			return utils.SendError(c, fiber.StatusUnauthorized, "session expired")
		}

		return c.Next()
	}
}
