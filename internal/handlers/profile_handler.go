package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/profile-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/profile-service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	start := time.Now()
	profile, err := h.profileService.Create(c.UserContext(), req.ToInput())
	if err != nil {
		return h.fail(c, err, "profile.create", start)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewProfileResponse(profile))
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid profile ID",
		})
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	start := time.Now()
	profile, err := h.profileService.Update(c.UserContext(), id, req.ToInput())
	if err != nil {
		return h.fail(c, err, "profile.update", start, "profile_id", id.String())
	}

	return c.JSON(dto.NewUpdateProfileResponse(profile))
}

func (h *ProfileHandler) GetForEdit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid profile ID",
		})
	}

	start := time.Now()
	view, err := h.profileService.GetForEdit(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err, "profile.edit", start, "profile_id", id.String())
	}

	return c.JSON(dto.NewProfileEditResponse(view))
}

func (h *ProfileHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", services.DefaultPageSize)

	start := time.Now()
	result, err := h.profileService.List(c.UserContext(), page, pageSize)
	if err != nil {
		return h.fail(c, err, "profile.list", start)
	}

	return c.JSON(dto.NewProfileListResponse(result))
}

func (h *ProfileHandler) Search(c *fiber.Ctx) error {
	start := time.Now()
	profiles, err := h.profileService.SearchBySkill(c.UserContext(), c.Query("skill"))
	if err != nil {
		return h.fail(c, err, "profile.search", start)
	}

	return c.JSON(dto.NewSearchResponse(profiles))
}

// fail maps service errors to responses. Unexpected errors are logged with
// their details and hidden from the client.
func (h *ProfileHandler) fail(c *fiber.Ctx, err error, action string, start time.Time, attrs ...any) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrProfileNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	args := append([]any{
		"request_id", requestID(c),
		"action", action,
		"error", err.Error(),
		"latency_ms", time.Since(start).Milliseconds(),
	}, attrs...)
	slog.Error("profile request failed", args...)

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
