package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/profile-service/internal/database"
	"github.com/ahmetcoskunkizilkaya/profile-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/profile-service/internal/skills"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(h.db); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:      "ok",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		DB:          dbStatus,
		KnownSkills: len(skills.Canonicals()),
	})
}
