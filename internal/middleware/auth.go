package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/linklab/linklab-api/internal/authctx"
	"github.com/linklab/linklab-api/internal/config"
	"github.com/linklab/linklab-api/internal/dto"
)

// JWTProtected verifies the bearer token's signature and expiry, then
// resolves the typed Claims (issuer/audience/subject checks) before the
// handler runs.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			claims, err := authctx.FromToken(c.Locals("user"), cfg.JWTIssuer, cfg.JWTAudience)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: true, Message: "Unauthorized: invalid token claims",
				})
			}
			authctx.Store(c, claims)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}
