package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthlog/internal/services"
)

func (handler *Handler) parseRange(c *fiber.Ctx) (services.DateRange, error) {
	return services.ParseExportRange(c.Query("from"), c.Query("to"), c.Query("period"), handler.now(), handler.location)
}

func reportContentType(file *services.ExportFile) string {
	if file.Encrypted {
		return fiber.MIMEOctetStream
	}
	return "application/pdf"
}
