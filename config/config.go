package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/premium/core/metrics"
	"github.com/kilianp07/premium/infra/telemetry"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "config.yaml"

// EnvPrefix marks environment overrides, e.g. PREMIUM_SERVER__ADDR.
const EnvPrefix = "PREMIUM_"

type Config struct {
	Server   ServerConfig     `json:"server"`
	Pipeline PipelineConfig   `json:"pipeline"`
	Logging  LoggingConfig    `json:"logging"`
	Metrics  metrics.Config   `json:"metrics"`
	Tracing  telemetry.Config `json:"tracing"`
}

// Load reads path, applies PREMIUM_ environment overrides, fills defaults and
// validates every section. An empty path skips the file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault behaves like Load but tolerates a missing file at path, which
// is how the service runs with no config at all.
func LoadDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		path = ""
	}
	return Load(path)
}

func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.Pipeline.SetDefaults()
	c.Logging.SetDefaults()
	c.Metrics.SetDefaults()
	c.Tracing.SetDefaults()
}

func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Pipeline.Validate(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := c.Tracing.Validate(); err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	return nil
}
