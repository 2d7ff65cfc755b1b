package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/geojsonprofil/profil/internal/pkg/logging"
)

// RequestIDLogMiddleware builds a request-scoped *slog.Logger carrying the
// Fiber request ID and stores it in the user context, where the services
// pick it up through logging.FromContext.
func RequestIDLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ridStr, ok := c.Locals("requestid").(string)
		if !ok || ridStr == "" {
			return c.Next()
		}

		reqLogger := slog.Default().With("request_id", ridStr)
		c.SetUserContext(logging.WithLogger(c.UserContext(), reqLogger))

		return c.Next()
	}
}
