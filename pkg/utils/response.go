package utils

import "github.com/gofiber/fiber/v2"

// Every response carries a human-readable message; 5xx responses also echo
// the underlying error.

func ResponseMessage(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"message": msg,
	})
}

func ResponseFailure(ctx *fiber.Ctx, status int, msg string, err error) error {
	return ctx.Status(status).JSON(fiber.Map{
		"message": msg,
		"error":   err.Error(),
	})
}
