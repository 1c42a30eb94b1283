package server

import (
	"errors"
	"log/slog"

	"forumapi/internal/middleware"
	"forumapi/internal/models"
	"forumapi/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// respondError maps err to its envelope. Server faults are logged with their
// cause and reach the client only as the generic error envelope.
func respondError(c *fiber.Ctx, err error) error {
	if models.StatusFor(err) >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return models.RespondWithAppError(c, err)
}

// errorHandler catches errors that escape handlers, including Fiber's own
// 404 and 405 for unknown routes.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusNotFound {
		return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("route", c.Path()))
	}
	return respondError(c, err)
}

// payload decodes the request body into an untyped payload for validation.
func payload(c *fiber.Ctx) (validation.Payload, error) {
	return validation.DecodePayload(c.Body())
}
