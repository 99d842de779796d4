package routes

import (
	"github.com/ahmetcoskunkizilkaya/profile-service/internal/config"
	"github.com/ahmetcoskunkizilkaya/profile-service/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/profile-service/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/profile-service/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Setup mounts every route under /api. limiterStorage may be nil, in which
// case rate limit counters stay in process memory.
func Setup(
	app *fiber.App,
	cfg *config.Config,
	limiterStorage fiber.Storage,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	profileHandler *handlers.ProfileHandler,
) {
	api := app.Group("/api")

	// General API rate limiter, per IP
	api.Use(middleware.RateLimit("api", cfg.APIRateLimit, limiterStorage))

	api.Get("/health", healthHandler.Check)

	// Bearer tokens in exchange for basic credentials
	api.Post("/auth/token", middleware.BasicAuth(authService), authHandler.IssueToken)

	adminRequired := middleware.AdminRequired(authService)

	// Profile creation gets its own, stricter limit. It runs before the
	// credential check, so rejected attempts count against the quota.
	api.Post("/profile",
		middleware.RateLimit("create", cfg.CreateRateLimit, limiterStorage),
		adminRequired,
		profileHandler.Create,
	)
	api.Get("/profile/:id/edit", profileHandler.GetForEdit)
	api.Put("/profile/:id", adminRequired, profileHandler.Update)

	api.Get("/profiles", profileHandler.List)
	api.Get("/profiles/search", profileHandler.Search)
}
