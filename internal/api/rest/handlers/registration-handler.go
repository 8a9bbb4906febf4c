package handlers

import (
	"errors"
	"mime/multipart"
	"strconv"

	"github.com/confluencehack/registration_service/internal/dto"
	"github.com/confluencehack/registration_service/internal/services"
	"github.com/confluencehack/registration_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const maxFileSize = 25 * 1024 * 1024

type RegistrationHandler struct {
	svc services.RegistrationService
}

func NewRegistrationHandler(svc services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

func (h *RegistrationHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/registration", h.Submit)
	api.Get("/status/:userID", h.Status)
}

func (h *RegistrationHandler) Submit(ctx *fiber.Ctx) error {
	bonafide, err := readFormFile(ctx, "bonafideFile")
	if err != nil {
		return utils.ResponseFailure(ctx, fiber.StatusBadRequest, "Bonafide file is required", err)
	}
	if bonafide == nil {
		return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "Bonafide file is required")
	}

	ppt, err := readFormFile(ctx, "pptFile")
	if err != nil {
		return utils.ResponseFailure(ctx, fiber.StatusBadRequest, "Invalid ppt file", err)
	}

	input := dto.RegistrationInput{
		TeamName:        ctx.FormValue("teamName"),
		InstitutionName: ctx.FormValue("institutionName"),
		Members:         ctx.FormValue("members"),
		ProblemDomain:   ctx.FormValue("problemDomain"),
		ProjectTitle:    ctx.FormValue("projectTitle"),
		GithubRepoLink:  ctx.FormValue("githubRepoLink"),
		DemoVideoURL:    ctx.FormValue("demoVideoURL"),
		AgreeToRules:    ctx.FormValue("agreeToRules") == "true",
		Bonafide:        bonafide,
		Ppt:             ppt,
	}

	if v := ctx.FormValue("totalMembers"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "totalMembers must be a number")
		}
		input.TeamSize = n
	}

	if v := ctx.FormValue("userId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "userId must be a number")
		}
		uid := uint(id)
		input.UserID = &uid
	}

	regID, err := h.svc.Submit(ctx.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBonafideRequired):
			return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "Bonafide file is required")
		case errors.Is(err, services.ErrAlreadyRegistered):
			return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "User already has a registration")
		default:
			return utils.ResponseFailure(ctx, fiber.StatusInternalServerError, "Registration failed", err)
		}
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration submitted successfully",
		"regId":   regID,
	})
}

func (h *RegistrationHandler) Status(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("userID"), 10, 32)
	if err != nil {
		return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "invalid user id")
	}

	code, err := h.svc.Status(uint(id))
	if err != nil {
		return utils.ResponseFailure(ctx, fiber.StatusInternalServerError, "Failed to fetch status", err)
	}

	return ctx.JSON(fiber.Map{
		"ideaPitching": code,
	})
}

// readFormFile returns nil without error when the field is absent.
func readFormFile(ctx *fiber.Ctx, field string) (*dto.FileInput, error) {
	fh, err := ctx.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return readMultipartFile(fh)
}

func readMultipartFile(fh *multipart.FileHeader) (*dto.FileInput, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := utils.ReadAllLimit(f, maxFileSize)
	if err != nil {
		return nil, err
	}

	return &dto.FileInput{
		Filename: fh.Filename,
		Bytes:    b,
	}, nil
}
