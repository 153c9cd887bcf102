package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/psfit/internal/config"
	"github.com/oakwood-commons/psfit/pkg/settings"
)

// configLoader centralizes default + user config merging.
type configLoader struct {
	defaultConfig func() (config.Config, error)
}

var cfgLoader = configLoader{defaultConfig: config.Default}

func loadMergedConfig(cfgPath string) (config.Config, error) {
	return cfgLoader.loadMergedConfig(cfgPath)
}

func (l configLoader) loadMergedConfig(cfgPath string) (config.Config, error) {
	defaults := config.Default
	if l.defaultConfig != nil {
		defaults = l.defaultConfig
	}
	cfg, err := defaults()
	if err != nil {
		return cfg, fmt.Errorf("load default config: %w", err)
	}

	if cfgPath != "" {
		user, err := config.LoadFile(cfgPath)
		if err != nil {
			return cfg, err
		}
		cfg = config.Merge(cfg, user)
	}

	if err := cfg.Validate(); err != nil {
		if cfgPath != "" {
			return cfg, fmt.Errorf("%s: %w", cfgPath, err)
		}
		return cfg, err
	}
	return cfg, nil
}

// resolveConfigPath returns the explicit path if set, otherwise the first
// existing file among $XDG_CONFIG_HOME/psfit/config.{yaml,toml} (or
// ~/.config/psfit when XDG_CONFIG_HOME is unset).
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dir = filepath.Join(xdg, settings.CliBinaryName)
	} else if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".config", settings.CliBinaryName)
	}
	if dir == "" {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		candidate := filepath.Join(dir, name)
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// marshalConfig renders the merged config for --show-config.
func marshalConfig(cfg config.Config) (string, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(out), nil
}
