package cli

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/healthlog/internal/api"
	"github.com/terraincognita07/healthlog/internal/db"
	"github.com/terraincognita07/healthlog/internal/services"
)

const exportQueuePerWorker = 8

func newServeCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(options, func(rt *runtime) error {
				return serve(cmd.Context(), rt)
			})
		},
	}
}

func serve(parent context.Context, rt *runtime) error {
	if parent == nil {
		parent = context.Background()
	}

	worker := services.NewExportWorker(rt.exports, rt.cfg.ExportWorkers, rt.cfg.ExportWorkers*exportQueuePerWorker)
	lifecycleCtx, cancelLifecycle := context.WithCancel(parent)
	defer cancelLifecycle()
	worker.Start(lifecycleCtx)
	defer worker.Close()

	app, err := newServerApp(rt, worker)
	if err != nil {
		return err
	}

	sigCtx, stopSignals := signal.NotifyContext(lifecycleCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("healthlog listening on http://0.0.0.0:%s (db: %s, exports: %s, tz: %s)",
		rt.cfg.Port, databaseLabel(rt), rt.cfg.ExportDir, rt.cfg.Location.String())
	if err := app.Listen(":" + rt.cfg.Port); err != nil {
		return err
	}
	log.Printf("healthlog stopped, waiting for queued exports")
	return nil
}

// newServerApp wires the API behind the standard middleware. Access log
// timestamps use the configured zone; process-wide time.Local is left alone.
func newServerApp(rt *runtime, worker *services.ExportWorker) (*fiber.App, error) {
	handler, err := api.NewHandler(api.Dependencies{
		Records:      rt.records,
		Stats:        rt.stats,
		Exports:      rt.exports,
		Worker:       worker,
		Passwords:    rt.passwords,
		Settings:     rt.settings,
		SecretKey:    rt.cfg.SecretKey,
		Location:     rt.cfg.Location,
		SessionTTL:   rt.cfg.SessionTTL,
		CookieSecure: rt.cfg.CookieSecure,
	})
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               "healthlog",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{TimeZone: rt.cfg.Location.String()}))
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)
	return app, nil
}

func databaseLabel(rt *runtime) string {
	if rt.cfg.DBDriver == db.DriverPostgres {
		return db.DriverPostgres
	}
	return rt.cfg.DBPath
}
