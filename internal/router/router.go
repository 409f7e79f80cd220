package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/course-agenda-api/internal/config"
	"github.com/noah-isme/course-agenda-api/internal/handler"
	"github.com/noah-isme/course-agenda-api/internal/observability"
)

// CoursesPrefix is the route prefix of the agenda endpoints.
const CoursesPrefix = "/api/v2/courses"

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AgendaHandler *handler.AgendaHandler
	JWTMiddleware fiber.Handler
	RateLimiter   fiber.Handler
	Languages     []string
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.Languages))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided middlewares, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AgendaHandler != nil {
		courses := app.Group(CoursesPrefix, jwtMiddleware, rateLimiter)
		deps.AgendaHandler.Register(courses)
	}
}
