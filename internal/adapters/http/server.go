// Package http serves the local control API over fiber.
package http

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// NewApp wires the routes for the container handler.
func NewApp(h *ContainerHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "lighthouse-tray",
		DisableStartupMessage: true,
	})

	app.Get("/healthz", Health)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Routes for Container operations
	containers := v1.Group("/containers")
	containers.Get("/", h.ListContainers)
	containers.Get("/:id", h.GetContainer)
	containers.Post("/:id/toggle", h.ToggleContainer)

	return app
}

// Serve listens on addr until ctx is done, then shuts the app down.
func Serve(ctx context.Context, app *fiber.App, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Control API listening.", "addr", addr)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if err := app.Shutdown(); err != nil {
			return err
		}
		return <-errCh
	}
}
