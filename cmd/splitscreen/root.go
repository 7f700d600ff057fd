package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phsym/console-slog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/1broseidon/splitscreen/internal/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "splitscreen",
	Short: "Tile gamescope windows into a split-screen layout",
	Long: "splitscreen watches for gamescope and gamescope-kbm windows and arranges them\n" +
		"into one, two, three or four player layouts on the output each window is on.",
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().String("config", "", "Config file path (default: ~/.config/splitscreen/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Override log_level (debug, info, warning, error)")
	rootCmd.PersistentFlags().Bool("json", false, "Print command output as JSON (default when stdout is not a terminal)")
}

// loadConfig loads the file named by --config, or the default location.
func loadConfig(cmd *cobra.Command) (*config.LoadResult, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

// jsonOutput reports whether command output should be JSON.
func jsonOutput(cmd *cobra.Command) bool {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return true
	}
	return !term.IsTerminal(int(os.Stdout.Fd()))
}

// parseLevel maps a config log level to a slog level.
func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// newLogger builds the process logger for format, writing to w.
func newLogger(w io.Writer, format string, level slog.Leveler) *slog.Logger {
	switch format {
	case config.LogFormatJSON:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	case config.LogFormatText:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	default:
		return slog.New(console.NewHandler(w, &console.HandlerOptions{Level: level}))
	}
}
