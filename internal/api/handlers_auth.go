package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthlog/internal/services"
)

func (handler *Handler) PasswordStatus(c *fiber.Ctx) error {
	hasPassword, err := handler.passwords.Status()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"has_password": hasPassword,
		"setup_mode":   !hasPassword,
	})
}

func (handler *Handler) CreateSession(c *fiber.Ctx) error {
	input := sessionInput{}
	if err := c.BodyParser(&input); err != nil || strings.TrimSpace(input.Password) == "" {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if wait := handler.sessionLimiter.blockedFor(limiterKey, now); wait > 0 {
		setRetryAfter(c, wait)
		return apiError(c, fiber.StatusTooManyRequests, "too many attempts")
	}

	hasPassword, err := handler.passwords.Status()
	if err != nil {
		return respondError(c, err)
	}
	if !hasPassword {
		return apiError(c, fiber.StatusConflict, "password not set")
	}

	ok, err := handler.passwords.Verify(input.Password)
	if err != nil {
		return respondError(c, err)
	}
	if !ok {
		handler.sessionLimiter.fail(limiterKey, now)
		return kindError(c, fiber.StatusUnauthorized, "invalid password", services.KindAuthenticationFailure)
	}
	handler.sessionLimiter.forget(limiterKey)

	session, err := handler.issueSession(c)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(session)
}

func (handler *Handler) DeleteSession(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}

// SetPassword sets the first password or changes the current one and
// answers with a fresh session.
func (handler *Handler) SetPassword(c *fiber.Ctx) error {
	input := passwordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.passwords.Change(input.CurrentPassword, input.Password, input.ConfirmPassword); err != nil {
		return respondError(c, err)
	}

	session, err := handler.issueSession(c)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	session["ok"] = true
	return c.JSON(session)
}

func (handler *Handler) ClearPassword(c *fiber.Ctx) error {
	input := passwordInput{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid input")
		}
	}

	if err := handler.passwords.Clear(input.CurrentPassword); err != nil {
		return respondError(c, err)
	}
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}
