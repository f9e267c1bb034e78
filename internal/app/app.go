// Package app wires the poller, dispatcher and control API together.
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/melih/lighthouse-tray/internal/adapters/http"
	"github.com/melih/lighthouse-tray/internal/adapters/notify"
	"github.com/melih/lighthouse-tray/internal/config"
	"github.com/melih/lighthouse-tray/internal/core/dispatcher"
	"github.com/melih/lighthouse-tray/internal/core/ports"
	"github.com/melih/lighthouse-tray/internal/core/poller"
	"github.com/melih/lighthouse-tray/internal/logging"
)

// App owns the long-running parts of the process.
type App struct {
	Poller     *poller.Poller
	Dispatcher *dispatcher.Dispatcher
	Notifier   *notify.Notifier

	listen string
	api    *fiber.App
}

// New builds an App over rt from cfg.
func New(cfg *config.Config, rt ports.ContainerRuntime) *App {
	notifier := notify.NewNotifier(cfg.Notifications)
	p := poller.New(rt,
		poller.WithInterval(cfg.PollInterval),
		poller.WithQueryTimeout(cfg.QueryTimeout),
	)
	d := dispatcher.New(rt, p,
		dispatcher.WithActionTimeout(cfg.ActionTimeout),
		dispatcher.WithResultHook(notifier.ActionResult),
	)

	a := &App{
		Poller:     p,
		Dispatcher: d,
		Notifier:   notifier,
		listen:     cfg.Listen,
	}
	if cfg.Listen != "" {
		a.api = http.NewApp(http.NewContainerHandler(p, d, cfg.ActionTimeout+cfg.QueryTimeout))
	}
	return a
}

// API returns the fiber app, or nil when the control API is disabled.
func (a *App) API() *fiber.App {
	return a.api
}

// Run blocks until ctx is cancelled or a component fails. In-flight actions
// are abandoned on shutdown.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.Poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	if a.api != nil {
		g.Go(func() error { return http.Serve(ctx, a.api, a.listen) })
	}
	return g.Wait()
}

// ApplyConfig applies the settings that can change without a restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	if err := a.Poller.SetInterval(cfg.PollInterval); err != nil {
		slog.Warn("Ignoring poll interval.", "err", err)
	}
	a.Notifier.SetEnabled(cfg.Notifications)
	if err := logging.Configure(cfg.LogLevel); err != nil {
		slog.Warn("Ignoring log level.", "err", err)
	}
}
