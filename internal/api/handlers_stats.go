package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetStats(c *fiber.Ctx) error {
	dateRange, err := handler.parseRange(c)
	if err != nil {
		return respondError(c, err)
	}

	overview, err := handler.stats.Overview(c.UserContext(), dateRange)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(overview)
}
