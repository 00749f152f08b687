package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthlog/internal/services"
)

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	dateRange, err := handler.parseRange(c)
	if err != nil {
		return respondError(c, err)
	}

	text, err := handler.exports.ExportJSON(c.UserContext(), dateRange)
	if err != nil {
		return respondError(c, err)
	}

	now := handler.now()
	if err := handler.settings.RecordExport(now); err != nil {
		return respondError(c, err)
	}

	filename := now.In(handler.location).Format("20060102") + "_health-export.json"
	setAttachmentHeaders(c, fiber.MIMEApplicationJSON, filename)
	return c.SendString(text)
}

// RequestReport queues a report job and answers 202 with its id. A non-empty
// password encrypts the report.
func (handler *Handler) RequestReport(c *fiber.Ctx) error {
	input := reportInput{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid input")
		}
	}

	dateRange, err := services.ParseExportRange(input.From, input.To, input.Period, handler.now(), handler.location)
	if err != nil {
		return respondError(c, err)
	}

	jobID, _, err := handler.worker.SubmitReport(dateRange, input.Password)
	if err != nil {
		return respondError(c, err)
	}

	c.Location("/api/export/jobs/" + jobID)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"job_id": jobID,
		"status": services.JobQueued,
	})
}

func (handler *Handler) GetExportJob(c *fiber.Ctx) error {
	job, ok := handler.worker.Job(c.Params("id"))
	if !ok {
		return respondError(c, services.ErrExportJobNotFound)
	}
	return c.JSON(job)
}

func (handler *Handler) DownloadExport(c *fiber.Ctx) error {
	job, ok := handler.worker.Job(c.Params("id"))
	if !ok {
		return respondError(c, services.ErrExportJobNotFound)
	}

	switch job.Status {
	case services.JobDone:
	case services.JobFailed:
		return kindError(c, statusForKind(job.ErrorKind), "export failed", job.ErrorKind)
	default:
		return apiError(c, fiber.StatusConflict, "export not ready")
	}

	if job.Kind == services.JobKindJSON {
		setAttachmentHeaders(c, fiber.MIMEApplicationJSON, job.File.Name)
	} else {
		setAttachmentHeaders(c, reportContentType(job.File), job.File.Name)
	}
	return c.SendFile(job.File.Path)
}

func (handler *Handler) LastExport(c *fiber.Ctx) error {
	last, ok, err := handler.settings.LastExport()
	if err != nil {
		return respondError(c, err)
	}
	if !ok {
		return c.JSON(fiber.Map{"last_export_at": nil})
	}
	return c.JSON(fiber.Map{"last_export_at": last})
}
