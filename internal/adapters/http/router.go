package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/samirrijal/mobilitymap/internal/pkg/metrics"
)

// SetupRoutes registers the map pages, static artifact, and JSON/GraphQL routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(requestid.New())
	app.Use(RequestLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		},
	}))

	// Security headers. The heatmap page frames the artifact, so framing
	// is allowed from the same origin.
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "SAMEORIGIN")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	app.Use(ETagMiddleware())
	app.Use(CachingMiddleware())

	// Map pages
	app.Get("/", IndexHandler())
	app.Get("/heatmap", HeatmapHandler(deps))
	app.Static("/static", deps.StaticDir, fiber.Static{Browse: false})

	// Health & readiness
	app.Get("/v1/health", HealthHandler())
	app.Get("/v1/ready", ReadyHandler(deps))

	// Read API over the render result
	v1 := app.Group("/v1")
	v1.Get("/summary", SummaryHandler(deps))
	v1.Get("/records", ListRecordsHandler(deps))
	v1.Get("/countries", ListCountriesHandler(deps))
	v1.Get("/diagnostics/unmatched", UnmatchedHandler(deps))

	app.Post("/graphql", GraphQLHandler(deps))

	SetupDocs(app, deps.Docs)
}
