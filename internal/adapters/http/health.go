package http

import (
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler returns a basic liveness check.
func HealthHandler() fiber.Handler {
	startedAt := time.Now()

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"uptime":  time.Since(startedAt).String(),
			"version": "dev",
		})
	}
}

// ReadyHandler reports ready once the map artifact is on disk.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		checks := make(map[string]string)
		allOK := true

		path := filepath.Join(deps.StaticDir, deps.ArtifactFile)
		switch {
		case deps.Artifacts == nil:
			checks["artifact"] = "not configured"
			allOK = false
		case deps.Artifacts.Exists(path):
			checks["artifact"] = "ok"
		default:
			checks["artifact"] = "missing: " + path
			allOK = false
		}

		if deps.Atlas != nil && !deps.Atlas.Result().RenderedAt.IsZero() {
			checks["render"] = "ok"
		} else {
			checks["render"] = "not rendered"
			allOK = false
		}

		status := "ready"
		code := fiber.StatusOK
		if !allOK {
			status = "not ready"
			code = fiber.StatusServiceUnavailable
		}

		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"checks": checks,
		})
	}
}
