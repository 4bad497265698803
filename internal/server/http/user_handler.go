package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/skilltrackhq/backend/internal/server/services"
)

type UserHandler struct {
	users *services.UserService
}

func (h *UserHandler) Info(c *fiber.Ctx) error {
	id, _ := c.Locals(localUserID).(string)

	info, err := h.users.GetInfo(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(info)
}

func (h *UserHandler) Leaderboard(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return badRequest("invalid pagination parameters")
	}
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 {
		return badRequest("invalid pagination parameters")
	}

	result, err := h.users.Leaderboard(c.Context(), page, limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"leaderboard": result.Users,
		"pagination": fiber.Map{
			"total":      result.Total,
			"page":       result.Page,
			"limit":      result.Limit,
			"totalPages": result.TotalPages,
		},
	})
}
