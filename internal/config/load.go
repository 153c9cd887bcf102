package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

var (
	embeddedConfigOnce sync.Once
	embeddedConfig     Config
	embeddedConfigErr  error
)

// DefaultConfigYAML returns a copy of the embedded default config YAML bytes.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default parses and returns the embedded default configuration.
func Default() (Config, error) {
	embeddedConfigOnce.Do(func() {
		if len(embeddedDefaultConfig) == 0 {
			embeddedConfigErr = fmt.Errorf("embedded default config is empty")
			return
		}
		embeddedConfig, embeddedConfigErr = Decode(embeddedDefaultConfig, FormatYAML)
		if embeddedConfigErr != nil {
			embeddedConfigErr = fmt.Errorf("decode embedded default config: %w", embeddedConfigErr)
		}
	})
	return embeddedConfig, embeddedConfigErr
}

// Format identifies a config file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatForPath picks the encoding from the file extension. Anything other
// than .toml is treated as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Decode parses data in the given format. Unknown keys are rejected so typos
// surface instead of being silently ignored.
func Decode(data []byte, format Format) (Config, error) {
	var cfg Config
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return cfg, err
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty or comment-only document decodes as io.EOF.
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, err
		}
	}
	return cfg, nil
}

// LoadFile reads and decodes a user config file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Decode(data, FormatForPath(path))
	if err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

// Merge overlays every setting present in override onto base.
func Merge(base, override Config) Config {
	cfg := base
	if override.PS.Path != "" {
		cfg.PS.Path = override.PS.Path
	}
	if override.Layout.Mode != "" {
		cfg.Layout.Mode = override.Layout.Mode
	}
	if override.Layout.FallbackWidth != nil {
		cfg.Layout.FallbackWidth = override.Layout.FallbackWidth
	}
	if override.Layout.DetailReserve != nil {
		cfg.Layout.DetailReserve = override.Layout.DetailReserve
	}
	if override.Highlight.Color != "" {
		cfg.Highlight.Color = override.Highlight.Color
	}
	if override.Highlight.Bold != nil {
		cfg.Highlight.Bold = override.Highlight.Bold
	}
	if override.Output.Truncate != "" {
		cfg.Output.Truncate = override.Output.Truncate
	}
	if override.Output.NoColor != nil {
		cfg.Output.NoColor = override.Output.NoColor
	}
	return cfg
}
