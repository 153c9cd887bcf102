// Package config holds the psfit configuration file schema, the embedded
// defaults, and the merge rules applied to user files.
package config

import (
	"fmt"
	"strings"
)

// Config is the merged configuration. Pointer fields distinguish "unset"
// from a zero value so user files only override what they mention.
type Config struct {
	PS        PSConfig        `yaml:"ps" toml:"ps"`
	Layout    LayoutConfig    `yaml:"layout" toml:"layout"`
	Highlight HighlightConfig `yaml:"highlight" toml:"highlight"`
	Output    OutputConfig    `yaml:"output" toml:"output"`
}

// PSConfig locates the process-status binary.
type PSConfig struct {
	Path string `yaml:"path,omitempty" toml:"path,omitempty"`
}

// LayoutConfig tunes column planning.
type LayoutConfig struct {
	// Mode is the default layout: normal, detail, or long.
	Mode string `yaml:"mode,omitempty" toml:"mode,omitempty"`
	// FallbackWidth is used when no terminal width can be detected.
	FallbackWidth *int `yaml:"fallback_width,omitempty" toml:"fallback_width,omitempty"`
	// DetailReserve is the command-line baseline for detail mode.
	DetailReserve *int `yaml:"detail_reserve,omitempty" toml:"detail_reserve,omitempty"`
}

// HighlightConfig styles matched rows. An empty Color keeps the classic
// bold red escape sequence.
type HighlightConfig struct {
	Color string `yaml:"color,omitempty" toml:"color,omitempty"`
	Bold  *bool  `yaml:"bold,omitempty" toml:"bold,omitempty"`
}

// OutputConfig controls how rows are written.
type OutputConfig struct {
	// Truncate is chars or cells.
	Truncate string `yaml:"truncate,omitempty" toml:"truncate,omitempty"`
	NoColor  *bool  `yaml:"no_color,omitempty" toml:"no_color,omitempty"`
}

var (
	validModes     = []string{"normal", "detail", "long"}
	validTruncates = []string{"chars", "cells"}
)

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Layout.Mode != "" && !contains(validModes, c.Layout.Mode) {
		return fmt.Errorf("invalid layout.mode %q (expected one of: %s)", c.Layout.Mode, strings.Join(validModes, ", "))
	}
	if c.Output.Truncate != "" && !contains(validTruncates, c.Output.Truncate) {
		return fmt.Errorf("invalid output.truncate %q (expected one of: %s)", c.Output.Truncate, strings.Join(validTruncates, ", "))
	}
	if c.Layout.FallbackWidth != nil && *c.Layout.FallbackWidth <= 0 {
		return fmt.Errorf("layout.fallback_width must be positive, got %d", *c.Layout.FallbackWidth)
	}
	if c.Layout.DetailReserve != nil && *c.Layout.DetailReserve < 0 {
		return fmt.Errorf("layout.detail_reserve must be non-negative, got %d", *c.Layout.DetailReserve)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// IntOr returns *p, or def when p is nil.
func IntOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// BoolOr returns *p, or def when p is nil.
func BoolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
