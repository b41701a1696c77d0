package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/a9sk/hypr-cycle/internal/compositor"
)

const (
	DefaultConfigDir  = "hypr-cycle"
	DefaultConfigFile = "config.yaml"
)

// Config is the on-disk configuration. Zero values mean "use the default".
type Config struct {
	Backend string    `yaml:"backend" json:"backend"`
	Socket  string    `yaml:"socket" json:"socket"`
	Timeout Duration  `yaml:"timeout" json:"timeout"`
	Log     LogConfig `yaml:"log" json:"log"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// Duration accepts Go duration strings ("500ms", "2s") in YAML and JSON.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.set(s)
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return d.set(s)
}

func (d *Duration) set(s string) error {
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Backend: compositor.BackendAuto,
		Timeout: Duration(2 * time.Second),
		Log:     LogConfig{Level: "info"},
	}
}

// GetConfigPath returns ~/.config/hypr-cycle/config.yaml
func GetConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, DefaultConfigDir, DefaultConfigFile)
}

// LoadConfig loads configuration from path. With an empty path the default
// location is tried and a missing file yields Default().
// Supports both .yaml and .json extensions
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = GetConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return LoadConfigFromBytes(data, format)
}

// LoadConfigFromBytes loads configuration from raw bytes on top of Default().
// format should be "yaml" or "json"
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	cfg := Default()

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// CompositorOptions converts the config into backend options.
func (c *Config) CompositorOptions() compositor.Options {
	return compositor.Options{
		Backend: c.Backend,
		Socket:  c.Socket,
		Timeout: time.Duration(c.Timeout),
	}
}
