// Package main is the entry point for the lighthouse-tray utility.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/melih/lighthouse-tray/internal/adapters/docker"
	"github.com/melih/lighthouse-tray/internal/adapters/tray"
	"github.com/melih/lighthouse-tray/internal/app"
	"github.com/melih/lighthouse-tray/internal/buildinfo"
	"github.com/melih/lighthouse-tray/internal/config"
	"github.com/melih/lighthouse-tray/internal/logging"
)

func main() {
	if err := logging.Configure(logging.LevelInfo); err != nil {
		_, _ = os.Stderr.WriteString("configure logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := rootCmd().Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

// options holds the persistent flags shared by every subcommand.
type options struct {
	configPath string
	interval   time.Duration
	listen     string
	debug      bool
	headless   bool
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "lighthouse-tray",
		Short:         "Monitor and start/stop Docker containers from the system tray",
		Version:       buildinfo.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.lighthouse-tray/config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "Poll interval, overrides the config file")
	cmd.Flags().StringVar(&opts.listen, "listen", "", "Control API address, overrides the config file (\"off\" disables it)")
	cmd.Flags().BoolVar(&opts.headless, "headless", false, "Run without the system tray")
	cmd.AddCommand(listCmd(opts))
	cmd.AddCommand(toggleCmd(opts))
	return cmd
}

// loadConfig resolves the config path, loads it and applies flag overrides.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, string, error) {
	path := opts.configPath
	if path == "" {
		if err := config.EnsureGlobalDir(); err != nil {
			return nil, "", fmt.Errorf("create settings directory: %w", err)
		}
		p, err := config.DefaultConfigFile()
		if err != nil {
			return nil, "", err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	if cmd.Flags().Changed("interval") {
		cfg.PollInterval = opts.interval
	}
	if cmd.Flags().Changed("listen") {
		cfg.Listen = opts.listen
		if opts.listen == "off" {
			cfg.Listen = ""
		}
	}
	if opts.debug {
		cfg.LogLevel = logging.LevelDebug
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	if err := logging.Configure(cfg.LogLevel); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func newRuntime(ctx context.Context, cfg *config.Config) (*docker.Adapter, error) {
	rt, err := docker.NewAdapter(cfg.DockerHost, docker.WithStopTimeout(cfg.StopTimeoutSeconds))
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
	defer cancel()
	if err := rt.Ping(pingCtx); err != nil {
		// Not fatal: the poller keeps retrying and the menu shows the outage.
		slog.Warn("Docker daemon not reachable yet.", "err", err)
	}
	return rt, nil
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, path, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	rt, err := newRuntime(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	a := app.New(cfg, rt)

	watcher, err := config.Watch(path, func(next *config.Config) {
		if opts.debug {
			next.LogLevel = logging.LevelDebug
		}
		a.ApplyConfig(next)
	})
	if err != nil {
		slog.Warn("Config hot reload disabled.", "path", path, "err", err)
	} else {
		defer watcher.Stop()
	}

	if opts.headless {
		slog.Info("Running headless (no system tray).")
		return runHeadless(cmd.Context(), a)
	}
	slog.Info("Running with system tray.")
	return runWithTray(cmd.Context(), a)
}

// runHeadless blocks on signals.
func runHeadless(parent context.Context, a *app.App) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Run(ctx)
}

// runWithTray runs the tray on the main goroutine.
// systray.Run must own the main goroutine on macOS.
func runWithTray(parent context.Context, a *app.App) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	errCh := make(chan error, 1)
	t := tray.New(tray.Config{
		Snapshots: a.Poller.Subscribe(),
		Toggler:   a.Dispatcher,
		InFlight:  a.Dispatcher.InFlight,
		Notifier:  a.Notifier,
		OnStart: func() {
			go func() {
				errCh <- a.Run(ctx)
				tray.Quit()
			}()

			// Quit the tray on SIGINT/SIGTERM.
			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				select {
				case sig := <-sigCh:
					slog.Info("Received signal, shutting down.", "signal", sig)
					tray.Quit()
				case <-ctx.Done():
				}
			}()
		},
		OnExit: cancel,
	})

	// This blocks the main goroutine until tray exits.
	t.Run()
	cancel()

	select {
	case err := <-errCh:
		return err
	case <-time.After(5 * time.Second):
		return nil
	}
}
