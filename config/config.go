package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/wenchichenginl/HERON/core/factory"
	"github.com/wenchichenginl/HERON/core/metrics"
	"github.com/wenchichenginl/HERON/core/model"
)

// Config is the full case configuration: what to dispatch, with which
// strategy, and where to record the results.
type Config struct {
	Case       model.Case           `json:"case"`
	Components []model.Component    `json:"components"`
	Sources    []model.Source       `json:"sources"`
	Dispatcher factory.ModuleConfig `json:"dispatcher"`
	Metrics    metrics.Config       `json:"metrics"`
	Logging    LoggingConfig        `json:"logging"`
	API        APIConfig            `json:"api"`
}

// APIConfig exposes the dispatch log query endpoint.
type APIConfig struct {
	// Addr is the listen address of the HTTP API, e.g. ":8081". Empty
	// disables the server.
	Addr string `json:"addr"`
	// Token, when set, is required as a bearer token on every request.
	Token string `json:"token"`
}

// Load reads the configuration file at path, applies HERON_* environment
// overrides and validates the result. A relative case run_dir is anchored at
// the config file's directory; an empty one defaults to it.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
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
	// Optional environment overrides
	if err := k.Load(env.Provider("HERON_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "heron_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	cfg.setDefaults(filepath.Dir(abs))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) setDefaults(configDir string) {
	switch {
	case c.Case.RunDir == "":
		c.Case.RunDir = configDir
	case !filepath.IsAbs(c.Case.RunDir):
		c.Case.RunDir = filepath.Join(configDir, c.Case.RunDir)
	}
	c.Logging.SetDefaults()
	if !filepath.IsAbs(c.Logging.Path) {
		c.Logging.Path = filepath.Join(c.Case.RunDir, c.Logging.Path)
	}
}

// Validate checks the pieces a run cannot start without.
func (c Config) Validate() error {
	if err := c.Case.Validate(); err != nil {
		return fmt.Errorf("case: %w", err)
	}
	if len(c.Components) == 0 {
		return fmt.Errorf("at least one component is required")
	}
	for _, comp := range c.Components {
		if err := comp.Validate(); err != nil {
			return fmt.Errorf("component %q: %w", comp.Name, err)
		}
	}
	if c.Dispatcher.Type == "" {
		return fmt.Errorf("dispatcher type is required")
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
