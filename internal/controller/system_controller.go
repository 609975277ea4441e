package controller

import (
	"context"
	"time"

	"marknote-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type ISystemController interface {
	RegisterRoutes(app fiber.Router)
	Index(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
	NotFound(ctx *fiber.Ctx) error
}

type systemController struct {
	store HealthChecker
}

// NewSystemController serves the unauthenticated endpoints. store may be nil
// when there is nothing to ping.
func NewSystemController(store HealthChecker) ISystemController {
	return &systemController{store: store}
}

func (c *systemController) RegisterRoutes(app fiber.Router) {
	app.Get("/", c.Index)
	app.Get("/api/health", c.Health)
}

func (c *systemController) Index(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Notes & Bookmarks API",
		"endpoints": fiber.Map{
			"notes":     "/api/notes",
			"bookmarks": "/api/bookmarks",
			"health":    "/api/health",
		},
	})
}

func (c *systemController) Health(ctx *fiber.Ctx) error {
	if c.store != nil {
		pingCtx, cancel := context.WithTimeout(ctx.UserContext(), 2*time.Second)
		defer cancel()
		if err := c.store.Ping(pingCtx); err != nil {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse("Store unavailable"))
		}
	}
	return ctx.JSON(fiber.Map{"success": true, "message": "Server is running"})
}

// NotFound is the catch-all for unmatched routes.
func (c *systemController) NotFound(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(
		"Route " + ctx.OriginalURL() + " not found. Available routes: /api/notes, /api/bookmarks",
	))
}
