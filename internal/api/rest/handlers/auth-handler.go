package handlers

import (
	"errors"

	"github.com/confluencehack/registration_service/internal/dto"
	"github.com/confluencehack/registration_service/internal/helper"
	"github.com/confluencehack/registration_service/internal/services"
	"github.com/confluencehack/registration_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	svc  services.AuthService
	auth helper.Auth
}

func NewAuthHandler(svc services.AuthService, auth helper.Auth) *AuthHandler {
	return &AuthHandler{svc: svc, auth: auth}
}

func (h *AuthHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/send-otp", h.SendOTP)
	api.Post("/signup", h.Signup)
	api.Post("/signin", h.Signin)
	api.Post("/reset-password", h.ResetPassword)
}

func (h *AuthHandler) SendOTP(ctx *fiber.Ctx) error {
	var req dto.SendOTPRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "Email is required")
	}
	if req.Email == "" {
		return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "Email is required")
	}

	if err := h.svc.RequestCode(ctx.Context(), req.Email, req.Purpose); err != nil {
		switch {
		case errors.Is(err, services.ErrEmailRegistered):
			return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "Email already registered")
		case errors.Is(err, services.ErrAccountNotFound):
			return utils.ResponseMessage(ctx, fiber.StatusNotFound, "No account found with this email")
		default:
			return utils.ResponseFailure(ctx, fiber.StatusInternalServerError, "Failed to send OTP", err)
		}
	}

	return utils.ResponseMessage(ctx, fiber.StatusOK, "OTP sent successfully")
}

func (h *AuthHandler) Signup(ctx *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}
	if req.Email == "" || req.Password == "" {
		return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	user, err := h.svc.CompleteSignup(ctx.Context(), req.Email, req.OTP, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidOTP):
			return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "Invalid or Incorrect OTP")
		case errors.Is(err, services.ErrUserExists):
			return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "User already exists")
		default:
			return utils.ResponseFailure(ctx, fiber.StatusInternalServerError, "Signup failed", err)
		}
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration Successful!",
		"user_id": user.ID,
	})
}

func (h *AuthHandler) Signin(ctx *fiber.Ctx) error {
	var req dto.SigninRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseMessage(ctx, fiber.StatusUnauthorized, "Invalid email or password")
	}

	user, err := h.svc.SignIn(req.Email, req.Password)
	if err != nil {
		return utils.ResponseMessage(ctx, fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := h.auth.GenerateToken(int(user.ID), user.Email)
	if err != nil {
		return utils.ResponseFailure(ctx, fiber.StatusInternalServerError, "could not generate token", err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Login success",
		"user_id": user.ID,
		"email":   user.Email,
		"token":   token,
	})
}

func (h *AuthHandler) ResetPassword(ctx *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if err := h.svc.CompletePasswordReset(ctx.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidOTP):
			return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "Invalid or expired OTP")
		case errors.Is(err, services.ErrAccountNotFound):
			return utils.ResponseMessage(ctx, fiber.StatusNotFound, "User not found")
		default:
			return utils.ResponseFailure(ctx, fiber.StatusInternalServerError, "Database error", err)
		}
	}

	return utils.ResponseMessage(ctx, fiber.StatusOK, "Password reset successfully")
}
