package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/session", handler.CreateSession)
	auth.Delete("/session", handler.DeleteSession)

	password := api.Group("/password")
	password.Get("", handler.PasswordStatus)
	password.Put("", handler.AuthRequired, handler.SetPassword)
	password.Delete("", handler.AuthRequired, handler.ClearPassword)

	diet := api.Group("/diet", handler.AuthRequired)
	diet.Get("", handler.ListDiet)
	diet.Post("", handler.CreateDiet)
	diet.Get("/:id", handler.GetDiet)
	diet.Put("/:id", handler.UpdateDiet)
	diet.Delete("/:id", handler.DeleteDiet)

	exercise := api.Group("/exercise", handler.AuthRequired)
	exercise.Get("", handler.ListExercise)
	exercise.Post("", handler.CreateExercise)
	exercise.Get("/:id", handler.GetExercise)
	exercise.Put("/:id", handler.UpdateExercise)
	exercise.Delete("/:id", handler.DeleteExercise)

	sleep := api.Group("/sleep", handler.AuthRequired)
	sleep.Get("", handler.ListSleep)
	sleep.Post("", handler.CreateSleep)
	sleep.Get("/:id", handler.GetSleep)
	sleep.Put("/:id", handler.UpdateSleep)
	sleep.Delete("/:id", handler.DeleteSleep)

	api.Get("/stats", handler.AuthRequired, handler.GetStats)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/json", handler.ExportJSON)
	export.Post("/report", handler.RequestReport)
	export.Get("/last", handler.LastExport)
	export.Get("/jobs/:id", handler.GetExportJob)
	export.Get("/jobs/:id/download", handler.DownloadExport)
}
