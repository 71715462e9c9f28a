package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ponsiv/internal/domain"
	applog "ponsiv/internal/log"
	"ponsiv/internal/media"
	"ponsiv/internal/services"
)

const msgGeneric = "Something went wrong. Please try again."

// statusOf maps an error to its HTTP status and the text shown to the client.
func statusOf(err error) (int, string) {
	var fe *fiber.Error
	var ve *services.ValidationError
	switch {
	case errors.As(err, &fe):
		if fe.Code >= fiber.StatusInternalServerError {
			return fe.Code, msgGeneric
		}
		return fe.Code, fe.Message
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, ve.Error()
	case errors.Is(err, services.ErrCartEmpty):
		return fiber.StatusBadRequest, "Your cart is empty."
	case errors.Is(err, media.ErrInvalidImage):
		return fiber.StatusBadRequest, "The image could not be read."
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, domain.Message(err)
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrMissingSession),
		errors.Is(err, domain.ErrMissingUser):
		return fiber.StatusUnauthorized, domain.Message(err)
	case errors.Is(err, domain.ErrEmailAlreadyUsed):
		return fiber.StatusConflict, domain.Message(err)
	case errors.Is(err, domain.ErrCancelled):
		return fiber.StatusServiceUnavailable, domain.Message(err)
	case errors.Is(err, domain.ErrPersistenceFailed), errors.Is(err, domain.ErrDecodingFailed):
		return fiber.StatusInternalServerError, domain.Message(err)
	default:
		return fiber.StatusInternalServerError, msgGeneric
	}
}

// ErrorHandler renders every handler error as {"error": "..."} without
// leaking internals; server-side failures are logged.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, msg := statusOf(err)
	c.Status(code)
	if code >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	}
	return c.JSON(fiber.Map{"error": msg})
}
