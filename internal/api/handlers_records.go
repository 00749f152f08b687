package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthlog/internal/models"
	"github.com/terraincognita07/healthlog/internal/services"
)

func (handler *Handler) ListDiet(c *fiber.Ctx) error {
	dateRange, err := handler.parseRange(c)
	if err != nil {
		return respondError(c, err)
	}
	records, err := handler.records.ListDiet(c.UserContext(), dateRange)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mapViews(records, newDietView))
}

func (handler *Handler) GetDiet(c *fiber.Ctx) error {
	id, err := parseRecordID(c)
	if err != nil {
		return respondError(c, err)
	}
	record, err := handler.records.GetDiet(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newDietView(record))
}

func (handler *Handler) CreateDiet(c *fiber.Ctx) error {
	payload := dietPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	record := payload.record()
	if err := handler.records.CreateDiet(c.UserContext(), &record); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newDietView(record))
}

func (handler *Handler) UpdateDiet(c *fiber.Ctx) error {
	id, err := parseRecordID(c)
	if err != nil {
		return respondError(c, err)
	}
	payload := dietPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	record := payload.record()
	if err := handler.records.UpdateDiet(c.UserContext(), id, &record); err != nil {
		return respondError(c, err)
	}
	return c.JSON(newDietView(record))
}

func (handler *Handler) DeleteDiet(c *fiber.Ctx) error {
	id, err := parseRecordID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := handler.records.DeleteDiet(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ListExercise(c *fiber.Ctx) error {
	dateRange, err := handler.parseRange(c)
	if err != nil {
		return respondError(c, err)
	}
	records, err := handler.records.ListExercise(c.UserContext(), dateRange)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mapViews(records, newExerciseView))
}

func (handler *Handler) GetExercise(c *fiber.Ctx) error {
	id, err := parseRecordID(c)
	if err != nil {
		return respondError(c, err)
	}
	record, err := handler.records.GetExercise(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newExerciseView(record))
}

func (handler *Handler) CreateExercise(c *fiber.Ctx) error {
	payload := exercisePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	record := payload.record()
	if err := handler.records.CreateExercise(c.UserContext(), &record); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newExerciseView(record))
}

func (handler *Handler) UpdateExercise(c *fiber.Ctx) error {
	id, err := parseRecordID(c)
	if err != nil {
		return respondError(c, err)
	}
	payload := exercisePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	record := payload.record()
	if err := handler.records.UpdateExercise(c.UserContext(), id, &record); err != nil {
		return respondError(c, err)
	}
	return c.JSON(newExerciseView(record))
}

func (handler *Handler) DeleteExercise(c *fiber.Ctx) error {
	id, err := parseRecordID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := handler.records.DeleteExercise(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ListSleep(c *fiber.Ctx) error {
	dateRange, err := handler.parseRange(c)
	if err != nil {
		return respondError(c, err)
	}
	records, err := handler.records.ListSleep(c.UserContext(), dateRange)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mapViews(records, handler.sleepView))
}

func (handler *Handler) GetSleep(c *fiber.Ctx) error {
	id, err := parseRecordID(c)
	if err != nil {
		return respondError(c, err)
	}
	record, err := handler.records.GetSleep(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(handler.sleepView(record))
}

func (handler *Handler) CreateSleep(c *fiber.Ctx) error {
	record, err := handler.parseSleepPayload(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := handler.records.CreateSleep(c.UserContext(), &record); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(handler.sleepView(record))
}

func (handler *Handler) UpdateSleep(c *fiber.Ctx) error {
	id, err := parseRecordID(c)
	if err != nil {
		return respondError(c, err)
	}
	record, err := handler.parseSleepPayload(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := handler.records.UpdateSleep(c.UserContext(), id, &record); err != nil {
		return respondError(c, err)
	}
	return c.JSON(handler.sleepView(record))
}

func (handler *Handler) DeleteSleep(c *fiber.Ctx) error {
	id, err := parseRecordID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := handler.records.DeleteSleep(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) parseSleepPayload(c *fiber.Ctx) (models.SleepRecord, error) {
	payload := sleepPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return models.SleepRecord{}, services.ErrRecordInvalid
	}
	return payload.record(handler.location)
}

func (handler *Handler) sleepView(record models.SleepRecord) sleepView {
	return newSleepView(record, handler.location)
}
