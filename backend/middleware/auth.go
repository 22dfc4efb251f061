package middleware

import (
	"learnhub/backend/config"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// AuthMiddleware checks the Bearer token and stores its claims in Locals.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractClaimsFromToken(c, cfg)
		if err != nil {
			return utils.HandleError(c, err)
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// Claims returns the caller set by AuthMiddleware, or nil.
func Claims(c *fiber.Ctx) *utils.Claims {
	claims, _ := c.Locals(claimsKey).(*utils.Claims)
	return claims
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role string) fiber.Handler {
	return Authorize(HasRole(role))
}
