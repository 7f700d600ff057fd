package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Log formats understood by the CLI.
const (
	LogFormatConsole = "console"
	LogFormatText    = "text"
	LogFormatJSON    = "json"
)

// Config is the effective daemon configuration.
type Config struct {
	// Display is the X display to connect to when DISPLAY is unset.
	Display string `yaml:"display,omitempty"`
	// XAuthority is the X authority file used when XAUTHORITY is unset.
	XAuthority string `yaml:"xauthority,omitempty"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// IPC enables the unix socket control server.
	IPC bool `yaml:"ipc"`
	// ArrangeOnStart runs one layout pass as soon as the daemon starts.
	ArrangeOnStart bool `yaml:"arrange_on_start"`
	// RelayoutHotkey is a global key binding (xgbutil keybind syntax) that
	// triggers a layout pass. Empty disables it.
	RelayoutHotkey string `yaml:"relayout_hotkey,omitempty"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      LogFormatConsole,
		IPC:            true,
		ArrangeOnStart: true,
	}
}

// ValidationError ties a validation failure to a config path and, when
// known, the file position that set it.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	switch c.LogFormat {
	case LogFormatConsole, LogFormatText, LogFormatJSON:
	default:
		return &ValidationError{Path: "log_format", Err: fmt.Errorf("log_format must be one of: console, text, json")}
	}
	if strings.TrimSpace(c.RelayoutHotkey) != c.RelayoutHotkey {
		return &ValidationError{Path: "relayout_hotkey", Err: fmt.Errorf("relayout_hotkey must not have surrounding whitespace")}
	}
	return nil
}

// Save writes the configuration to the standard location.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the source YAML files.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
