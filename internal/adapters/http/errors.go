package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/geojsonprofil/profil/internal/core/domain"
)

// conversionFailedMessage is the only thing users learn about a failed conversion.
const conversionFailedMessage = "Błąd: Niepoprawny plik GeoJSON. Upewnij się, że przesłany plik pochodzi z narzędzia 'Profil podłużny' na stronie https://polska.e-mapa.net."

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: bad_request, conversion_failed, internal_error, etc.
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

// errConversion returns a 422 with the generic message, or a 500 for
// anything that is not a conversion failure.
func errConversion(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrConversionFailed) {
		return newError(c, fiber.StatusUnprocessableEntity, "conversion_failed", conversionFailedMessage)
	}
	return errInternal(c, "internal error")
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}
