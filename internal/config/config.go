package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mylauncher/internal/customapps"
	"mylauncher/internal/history"
	"mylauncher/internal/runner"

	"gopkg.in/yaml.v3"
)

// appDirName is the directory under the user config dir holding all launcher files
const appDirName = "mylauncher"

// configFileName is the name of the config file
const configFileName = "config.yaml"

// Config holds the launcher configuration
type Config struct {
	SearchPaths   []string     `yaml:"search_paths,omitempty"`   // Empty = default application dirs
	HistoryPath   string       `yaml:"history_path,omitempty"`   // Empty = <config dir>/history
	ShortcutsPath string       `yaml:"shortcuts_path,omitempty"` // Empty = <config dir>/shortcuts.yaml
	Launch        LaunchConfig `yaml:"launch"`
	FirstRun      bool         `yaml:"-"` // No config file was found
	path          string
}

// LaunchConfig controls how commands are started
type LaunchConfig struct {
	Strategy     string   `yaml:"strategy"`                // auto, scope or direct
	ScopeCommand []string `yaml:"scope_command,omitempty"` // Empty = systemd-run --user --scope
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Launch: LaunchConfig{
			Strategy: runner.StrategyAuto,
		},
		FirstRun: true,
		path:     ConfigPath(),
	}
}

// ConfigDir returns the directory containing launcher config files
func ConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, appDirName)
}

// ConfigPath returns the path to the default config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// Load loads the configuration from path. An empty path means ConfigPath;
// a missing file yields the defaults.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = ConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			cfg.path = path
			return cfg, nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.FirstRun = false
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	switch c.Launch.Strategy {
	case "":
		c.Launch.Strategy = runner.StrategyAuto
	case runner.StrategyAuto, runner.StrategyScope, runner.StrategyDirect:
	default:
		return fmt.Errorf("unknown launch strategy %q (want auto, scope or direct)", c.Launch.Strategy)
	}
	return nil
}

// Path returns the file the config was loaded from or will be saved to
func (c *Config) Path() string {
	if c.path == "" {
		return ConfigPath()
	}
	return c.path
}

// Save saves the configuration to its file
func (c *Config) Save() error {
	path := c.Path()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// GetHistoryPath returns the history file location
func (c *Config) GetHistoryPath() string {
	if strings.TrimSpace(c.HistoryPath) != "" {
		return c.HistoryPath
	}
	return history.DefaultPath()
}

// GetShortcutsPath returns the custom shortcuts file location
func (c *Config) GetShortcutsPath() string {
	if strings.TrimSpace(c.ShortcutsPath) != "" {
		return c.ShortcutsPath
	}
	return customapps.DefaultPath()
}
