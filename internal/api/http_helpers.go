package api

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthlog/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func kindError(c *fiber.Ctx, status int, message string, kind services.ErrorKind) error {
	return c.Status(status).JSON(fiber.Map{"error": message, "kind": kind})
}

func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindInvalidInput:
		return fiber.StatusBadRequest
	case services.KindAuthenticationFailure:
		return fiber.StatusUnauthorized
	case services.KindSerializationFailure:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError maps service failures onto status codes. Storage failures are
// logged and reported without their cause.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrRecordNotFound), errors.Is(err, services.ErrExportJobNotFound):
		return apiError(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, services.ErrExportQueueFull), errors.Is(err, services.ErrExportWorkerClosed):
		return apiError(c, fiber.StatusServiceUnavailable, "export queue unavailable")
	}

	kind := services.KindOf(err)
	status := statusForKind(kind)
	switch kind {
	case services.KindAuthenticationFailure:
		return kindError(c, status, "authentication failed", kind)
	case services.KindStorageFailure:
		log.Printf("api: %s %s failed: %v", c.Method(), c.Path(), err)
		return kindError(c, status, "internal error", kind)
	default:
		return kindError(c, status, err.Error(), kind)
	}
}

func parseRecordID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid record id", services.ErrRecordInvalid)
	}
	return uint(id), nil
}

func setAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
