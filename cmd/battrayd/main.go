// Package main is the entry point for the battrayd battery widget.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/jmylchreest/battray/internal/battery"
	"github.com/jmylchreest/battray/internal/brightness"
	"github.com/jmylchreest/battray/internal/config"
	"github.com/jmylchreest/battray/internal/daemon"
	"github.com/jmylchreest/battray/internal/display"
	"github.com/jmylchreest/battray/internal/upower"
)

const appID = "io.github.jmylchreest.battray"

var (
	// Build-time variables
	version = "dev"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		println("battrayd version", version)
		os.Exit(0)
	}

	// Load configuration before logging so the level can come from it
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config, using defaults", "error", err)
		cfg = config.DefaultConfig()
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	run(cfg, logger)
}

// slogLevel maps a config level name to a slog.Level.
func slogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func run(cfg *config.Config, logger *slog.Logger) {
	logger.Info("starting battrayd", "version", version)

	app := adw.NewApplication(appID, 0)

	// Shared state between GTK main loop and signal handlers
	var (
		displayManager *display.Manager
		configWatcher  *config.Watcher
		running        atomic.Bool
	)

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()

		glib.IdleAdd(func() {
			if running.Load() {
				if configWatcher != nil {
					configWatcher.Stop()
				}
				if displayManager != nil {
					displayManager.Stop()
				}
				app.Quit()
			}
		})
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		display.ApplyUserStyle(logger)

		sink := brightness.NewLocalSink(logger)
		notifier := daemon.NewNotifier(cfg, logger)

		displayManager = display.NewManager(&app.Application, cfg, sink, logger)
		if err := displayManager.Start(); err != nil {
			logger.Error("failed to start display manager", "error", err)
			app.Quit()
			return
		}

		// The synchronizer runs in the background; the widget stays on its
		// default snapshot if the bus or device is unavailable.
		go runSynchronizer(ctx, displayManager, notifier, logger)

		// Config hot-reload
		var err error
		configWatcher, err = config.NewWatcher(cfg, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else {
			configWatcher.SetReloadCallback(func(newConfig *config.Config) {
				notifier.UpdateConfig(newConfig)
				glib.IdleAdd(func() {
					displayManager.UpdateConfig(newConfig)
				})
			})
			if err := configWatcher.Start(); err != nil {
				logger.Warn("failed to start config watcher", "error", err)
			}
		}

		logger.Info("battrayd ready")
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		if configWatcher != nil {
			configWatcher.Stop()
		}
		if displayManager != nil {
			displayManager.Stop()
		}
		running.Store(false)
	})

	status := app.Run(os.Args)

	cancel()

	if status != 0 {
		logger.Error("application exited with error", "status", status)
		os.Exit(status)
	}

	logger.Info("battrayd stopped")
}

// runSynchronizer connects to UPower and pumps snapshot updates into the
// widget until ctx is cancelled. Connector and resolver failures are fatal
// to the synchronizer but not to the process: they are reported once and
// the widget keeps its default state. There is no retry here yet; a flaky
// bus leaves the widget degraded until restart.
func runSynchronizer(ctx context.Context, displayManager *display.Manager, notifier *daemon.Notifier, logger *slog.Logger) {
	conn, err := upower.Connect()
	if err != nil {
		logger.Error("battery state unavailable", "error", err)
		return
	}

	device, err := upower.ResolveDisplayDevice(conn)
	if err != nil {
		logger.Error("battery state unavailable", "error", err)
		return
	}
	logger.Info("display device resolved", "path", device.Path())

	events := device.Watch(ctx,
		upower.PropIconName,
		upower.PropPercentage,
		upower.PropTimeToEmpty,
	)

	sync := battery.NewSynchronizer(device, events, logger)
	sync.SetPublishCallback(func(snap battery.Snapshot) {
		notifier.Observe(snap)
		glib.IdleAdd(func() {
			displayManager.Update(snap)
		})
	})
	sync.Run(ctx)
}
