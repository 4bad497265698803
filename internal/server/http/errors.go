package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/skilltrackhq/backend/internal/common"
)

// errorResponse is the JSON error body for every non-2xx response.
type errorResponse struct {
	Message string `json:"message"`
}

// errorHandler maps service sentinel errors to HTTP statuses. Anything
// unrecognized becomes a 500 with a generic message so internals never leak.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error

	switch {
	case errors.Is(err, common.ErrorNotFound):
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{Message: "not found"})
	case errors.Is(err, common.ErrorConflict):
		return c.Status(fiber.StatusConflict).JSON(errorResponse{Message: "conflict"})
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{Message: "unauthorized"})
	case errors.As(err, &fiberErr):
		return c.Status(fiberErr.Code).JSON(errorResponse{Message: fiberErr.Message})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Message: "internal server error"})
	}
}

func badRequest(message string) error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}
