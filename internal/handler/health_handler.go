package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/course-agenda-api/internal/config"
	"github.com/noah-isme/course-agenda-api/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	Languages   []string  `json:"languages"`
}

// HealthCheck returns a handler that reports application health information
// and the agenda languages the service can render.
func HealthCheck(cfg config.Config, languages []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			Languages:   languages,
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
