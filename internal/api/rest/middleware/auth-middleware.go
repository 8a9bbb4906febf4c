package middleware

import (
	"strings"

	"github.com/confluencehack/registration_service/internal/dto"
	"github.com/confluencehack/registration_service/internal/helper"
	"github.com/gofiber/fiber/v2"
)

func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))

		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		user, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "unauthorized",
			})
		}

		ctx.Locals("userID", uint(user.UserID))
		ctx.Locals("user", user)
		return ctx.Next()
	}
}

// AdminOnly admits only authenticated users whose email is on the configured
// allowlist.
func AdminOnly(adminEmails []string) fiber.Handler {
	allowed := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		allowed[strings.ToLower(strings.TrimSpace(e))] = true
	}

	return func(ctx *fiber.Ctx) error {
		user, ok := ctx.Locals("user").(dto.AuthResponse)
		if !ok || user.Email == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "unauthorized",
			})
		}

		if !allowed[strings.ToLower(user.Email)] {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "admin only",
			})
		}

		return ctx.Next()
	}
}
