package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/utils"
)

// EnsurePlayerID stores the caller's player id in c.Locals("playerID"). The id
// comes from the X-Player-ID header or the playerId query parameter.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Check if playerID is already set
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}

		if playerID == "" {
			log.Debugw("request without player id", "path", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		// Header and query values alias the request buffer, which fasthttp
		// reuses once the handler returns. Sessions and the queue keep the id.
		c.Locals("playerID", utils.CopyString(playerID))
		return c.Next()
	}
}
