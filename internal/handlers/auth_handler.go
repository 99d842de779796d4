package handlers

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/profile-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/profile-service/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/profile-service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// IssueToken runs behind basic auth and trades the verified credentials for
// a bearer token.
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	if !h.authService.TokensEnabled() {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Token issuance is disabled",
		})
	}

	username, _ := c.Locals(middleware.LocalsUsername).(string)
	token, err := h.authService.IssueToken(username)
	if err != nil {
		slog.Error("token issuance failed", "request_id", requestID(c), "action", "auth.token", "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to issue token",
		})
	}

	return c.JSON(dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.authService.AccessExpiry().Seconds()),
	})
}

func requestID(c *fiber.Ctx) string {
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
