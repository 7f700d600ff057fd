package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// RawConfig mirrors one YAML file. Unset keys stay nil so files can be
// layered.
type RawConfig struct {
	Include        IncludeList `yaml:"include"`
	Display        *string     `yaml:"display"`
	XAuthority     *string     `yaml:"xauthority"`
	LogLevel       *string     `yaml:"log_level"`
	LogFormat      *string     `yaml:"log_format"`
	IPC            *bool       `yaml:"ipc"`
	ArrangeOnStart *bool       `yaml:"arrange_on_start"`
	RelayoutHotkey *string     `yaml:"relayout_hotkey"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.XAuthority != nil {
		out.XAuthority = overlay.XAuthority
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.LogFormat != nil {
		out.LogFormat = overlay.LogFormat
	}
	if overlay.IPC != nil {
		out.IPC = overlay.IPC
	}
	if overlay.ArrangeOnStart != nil {
		out.ArrangeOnStart = overlay.ArrangeOnStart
	}
	if overlay.RelayoutHotkey != nil {
		out.RelayoutHotkey = overlay.RelayoutHotkey
	}
	out.Include = nil

	return out
}

// BuildEffectiveConfig applies raw on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.XAuthority != nil {
		cfg.XAuthority = *raw.XAuthority
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.LogFormat != nil {
		cfg.LogFormat = *raw.LogFormat
	}
	if raw.IPC != nil {
		cfg.IPC = *raw.IPC
	}
	if raw.ArrangeOnStart != nil {
		cfg.ArrangeOnStart = *raw.ArrangeOnStart
	}
	if raw.RelayoutHotkey != nil {
		cfg.RelayoutHotkey = *raw.RelayoutHotkey
	}

	return cfg
}
