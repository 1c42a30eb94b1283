package models

import "github.com/gofiber/fiber/v2"

// SuccessResponse wraps every successful payload.
type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondWithData writes {status:"success", data} with the given status code.
func RespondWithData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(SuccessResponse{Status: StatusSuccess, Data: data})
}

// RespondWithSuccess writes a bare {status:"success"}.
func RespondWithSuccess(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(SuccessResponse{Status: StatusSuccess})
}
