package handlers

import (
	"github.com/confluencehack/registration_service/internal/api/rest/middleware"
	"github.com/confluencehack/registration_service/internal/helper"
	"github.com/confluencehack/registration_service/internal/services"
	"github.com/confluencehack/registration_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	svc services.RegistrationService
}

func NewAdminHandler(svc services.RegistrationService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) SetupRoutes(app *fiber.App, auth helper.Auth, adminEmails []string) {
	admin := app.Group("/api/admin",
		middleware.AuthMiddleware(auth),
		middleware.AdminOnly(adminEmails),
	)

	admin.Get("/all-data", h.AllData)
}

func (h *AdminHandler) AllData(ctx *fiber.Ctx) error {
	snapshot, err := h.svc.AdminSnapshot()
	if err != nil {
		return utils.ResponseFailure(ctx, fiber.StatusInternalServerError, "Failed to fetch admin data", err)
	}

	return ctx.Status(fiber.StatusOK).JSON(snapshot)
}
