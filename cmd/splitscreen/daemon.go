package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/thejerf/suture/v4"

	"github.com/1broseidon/splitscreen/internal/config"
	"github.com/1broseidon/splitscreen/internal/daemon"
	"github.com/1broseidon/splitscreen/internal/hotkeys"
	"github.com/1broseidon/splitscreen/internal/ipc"
	"github.com/1broseidon/splitscreen/internal/platform"
	"github.com/1broseidon/splitscreen/internal/splitscreen"
	"github.com/1broseidon/splitscreen/internal/x11"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the split-screen arranger",
	Long: "Connect to the X display, watch for gamescope windows and keep them tiled.\n" +
		"SIGHUP reloads the config file.",
	Args: cobra.NoArgs,
	RunE: runDaemon,
}

var daemonNoArrange bool

func init() {
	daemonCmd.Flags().BoolVar(&daemonNoArrange, "no-arrange", false, "Skip the layout pass at startup")
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, _ []string) error {
	res, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := res.Config

	levelVar := new(slog.LevelVar)
	if err := applyLevel(cmd, levelVar, cfg.LogLevel); err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg.LogFormat, levelVar)
	slog.SetDefault(logger)

	sess, err := x11.ResolveSession(os.Environ(), cfg.Display, cfg.XAuthority)
	if err != nil {
		return err
	}
	if err := sess.Export(); err != nil {
		return fmt.Errorf("failed to export X session: %w", err)
	}
	logger.Info("connecting to X", "display", sess.Display)

	backend, err := platform.NewLinuxBackendFromDisplay(sess.Display)
	if err != nil {
		return err
	}
	defer backend.Disconnect()

	arranger := splitscreen.NewArranger(backend, logger.With("component", "arranger"))
	dispatcher := daemon.NewDispatcher(arranger, logger.With("component", "dispatcher"))

	splitscreen.Bind(backend, dispatcher.Handler())
	if err := backend.Watch(); err != nil {
		return fmt.Errorf("failed to watch root window: %w", err)
	}

	if cfg.RelayoutHotkey != "" {
		keys := hotkeys.NewHandler(backend, logger.With("component", "hotkeys"))
		if err := keys.RegisterRelayout(cfg.RelayoutHotkey, func() {
			dispatcher.Post(daemon.EventRelayout)
		}); err != nil {
			// The daemon is still useful without the binding.
			logger.Warn("relayout hotkey disabled", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reload := func() error {
		next, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := applyLevel(cmd, levelVar, next.Config.LogLevel); err != nil {
			return err
		}
		if keys := restartOnlyChanges(cfg, next.Config); len(keys) > 0 {
			logger.Warn("config changes take effect after restart", "keys", keys)
		}
		logger.Info("config reloaded", "log_level", levelVar.Level())
		return nil
	}

	super := daemon.NewSupervisor("splitscreen", logger)
	daemon.Add(super, dispatcher)
	daemon.Add(super, daemon.NewServiceFunc("x11-events", func(ctx context.Context) error {
		return runEventLoop(ctx, backend)
	}))
	daemon.Add(super, daemon.NewServiceFunc("sighup", func(ctx context.Context) error {
		return watchReload(ctx, logger, reload)
	}))

	if cfg.IPC {
		ctrl := daemon.NewController(dispatcher, backend, sess.Display, reload)
		server, err := ipc.NewServer(ctrl, logger.With("component", "ipc"))
		if err != nil {
			return err
		}
		daemon.Add(super, server)
	}

	if cfg.ArrangeOnStart && !daemonNoArrange {
		dispatcher.Post(daemon.EventRelayout)
	}

	logger.Info("splitscreen daemon running", "version", version)
	err = super.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("splitscreen daemon stopped")
	return nil
}

// restartOnlyChanges lists keys that differ between the running config and
// next but are only read at startup.
func restartOnlyChanges(running, next *config.Config) []string {
	var keys []string
	if running.Display != next.Display {
		keys = append(keys, "display")
	}
	if running.XAuthority != next.XAuthority {
		keys = append(keys, "xauthority")
	}
	if running.LogFormat != next.LogFormat {
		keys = append(keys, "log_format")
	}
	if running.IPC != next.IPC {
		keys = append(keys, "ipc")
	}
	if running.RelayoutHotkey != next.RelayoutHotkey {
		keys = append(keys, "relayout_hotkey")
	}
	return keys
}

// applyLevel sets levelVar from --log-level when given, else from level.
func applyLevel(cmd *cobra.Command, levelVar *slog.LevelVar, level string) error {
	if override, _ := cmd.Flags().GetString("log-level"); override != "" {
		level = override
	}
	parsed, err := parseLevel(level)
	if err != nil {
		return err
	}
	levelVar.Set(parsed)
	return nil
}

// eventLoop is the part of the backend runEventLoop drives.
type eventLoop interface {
	EventLoop()
	Quit()
}

// quitTimeout bounds the wait for the X event loop after Quit.
var quitTimeout = 2 * time.Second

// runEventLoop runs the X event loop until ctx is done. The loop returning
// on its own means the connection is gone, which ends the daemon.
func runEventLoop(ctx context.Context, loop eventLoop) error {
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		loop.EventLoop()
	}()

	select {
	case <-ctx.Done():
		loop.Quit()
		select {
		case <-exited:
		case <-time.After(quitTimeout):
			return fmt.Errorf("X event loop did not stop within %s", quitTimeout)
		}
		return ctx.Err()
	case <-exited:
		return fmt.Errorf("X event loop exited: %w", suture.ErrTerminateSupervisorTree)
	}
}

// watchReload calls reload on every SIGHUP until ctx is done.
func watchReload(ctx context.Context, logger *slog.Logger, reload func() error) error {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-hup:
			logger.Info("SIGHUP received, reloading config")
			if err := reload(); err != nil {
				logger.Error("config reload failed", "error", err)
			}
		}
	}
}
