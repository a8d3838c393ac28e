package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/samirrijal/mobilitymap/internal/adapters/http"
	"github.com/samirrijal/mobilitymap/internal/core/usecases"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Render the map once, then serve it over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	shutdownTracer := startTelemetry(ctx, cfg)
	defer shutdownTracer()

	// The rendering pass must succeed before the server starts.
	fsys := afero.NewOsFs()
	pipeline, publisher, err := buildPipeline(fsys, cfg)
	if err != nil {
		return err
	}
	result, err := pipeline.Run(ctx)
	if err != nil {
		slog.Error("rendering pass failed", "error", err)
		return err
	}

	docs, err := http.LoadAPIDocs(ctx, fsys, cfg.Server.DocsPath)
	if err != nil {
		slog.Warn("API docs unavailable", "path", cfg.Server.DocsPath, "error", err)
	}

	deps := &http.Dependencies{
		Atlas:        usecases.NewAtlasService(result),
		Artifacts:    publisher,
		StaticDir:    cfg.Output.Dir,
		ArtifactFile: cfg.Output.File,
		Docs:         docs,
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:           time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:             64 * 1024, // GraphQL queries only
		AppName:               "mobilitymap",
		ErrorHandler:          http.ErrorHandler,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       3600,
	}))

	http.SetupRoutes(app, deps)

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("map server starting", "addr", addr, "artifact", cfg.Output.ArtifactPath())
		errCh <- app.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		slog.Info("shutdown signal received, draining connections...", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
