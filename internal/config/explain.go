package config

import (
	"fmt"
	"sort"
)

var explainable = map[string]func(*Config) any{
	"display":          func(c *Config) any { return c.Display },
	"xauthority":       func(c *Config) any { return c.XAuthority },
	"log_level":        func(c *Config) any { return c.LogLevel },
	"log_format":       func(c *Config) any { return c.LogFormat },
	"ipc":              func(c *Config) any { return c.IPC },
	"arrange_on_start": func(c *Config) any { return c.ArrangeOnStart },
	"relayout_hotkey":  func(c *Config) any { return c.RelayoutHotkey },
}

// Paths lists the keys Explain accepts, sorted.
func Paths() []string {
	out := make([]string, 0, len(explainable))
	for p := range explainable {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Explain returns the effective value at the given key and its source.
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	get, ok := explainable[path]
	if !ok {
		return nil, Source{}, fmt.Errorf("unknown path: %s", path)
	}
	value := get(res.Config)

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

// FormatSource renders src as file:line:col or the default marker.
func FormatSource(src Source) string {
	if src.Kind == SourceFile && src.File != "" {
		return fmt.Sprintf("%s:%d:%d", src.File, src.Line, src.Column)
	}
	if src.Name != "" {
		return string(src.Kind) + ":" + src.Name
	}
	return string(src.Kind)
}
