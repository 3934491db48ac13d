// Package config loads the YAML configuration of the relalg command.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonlawlor/relalg"
	"github.com/jonlawlor/relalg/internal/logger"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of the relalg command.
type Config struct {
	Engine  EngineConfig   `yaml:"engine"`
	Log     logger.Config  `yaml:"log"`
	Sources []SourceConfig `yaml:"sources,omitempty"`
	Metrics MetricsConfig  `yaml:"metrics"`
}

// EngineConfig holds the limits of the relational engine.
type EngineConfig struct {
	MaxMaterialize int `yaml:"max_materialize"`
}

// Options converts the engine configuration into rel options.
func (c EngineConfig) Options() rel.Options {
	return rel.Options{MaxMaterialize: c.MaxMaterialize}
}

// SourceConfig names a relation loaded from outside the process.
type SourceConfig struct {
	Name string `yaml:"name"`
	// Kind is one of "json", "arrow", "postgres" or "mysql".
	Kind string `yaml:"kind"`
	// Path is the file of a json or arrow source.
	Path string `yaml:"path,omitempty"`
	// DSN and Query select the rows of a postgres or mysql source.
	DSN   string `yaml:"dsn,omitempty"`
	Query string `yaml:"query,omitempty"`
	// Schema optionally fixes the columns, as name: kind pairs in order.
	Schema []ColumnConfig `yaml:"schema,omitempty"`
}

// ColumnConfig is one column of a declared schema.
type ColumnConfig struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

// MetricsConfig controls where engine metrics are written.
type MetricsConfig struct {
	// File receives the metrics in the prometheus text format on exit.
	File string `yaml:"file,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Log: logger.DefaultConfig()}
}

// Load loads a configuration from a YAML file, starting from Default.
func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath) //nolint:gosec // path is chosen by the caller
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse reads a configuration from YAML, substituting ${VAR} references
// with environment variables first.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	content := substituteEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values which yaml cannot.
func (c *Config) Validate() error {
	if c.Engine.MaxMaterialize < 0 {
		return fmt.Errorf("engine.max_materialize must not be negative, got %d", c.Engine.MaxMaterialize)
	}
	seen := make(map[string]bool)
	for i, s := range c.Sources {
		if s.Name == "" {
			return fmt.Errorf("sources[%d]: missing name", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("sources[%d]: duplicate name %q", i, s.Name)
		}
		seen[s.Name] = true
		switch s.Kind {
		case "json", "arrow":
			if s.Path == "" {
				return fmt.Errorf("source %q: missing path", s.Name)
			}
		case "postgres", "mysql":
			if s.DSN == "" || s.Query == "" {
				return fmt.Errorf("source %q: %s needs dsn and query", s.Name, s.Kind)
			}
		default:
			return fmt.Errorf("source %q: unknown kind %q", s.Name, s.Kind)
		}
	}
	return nil
}

// Source returns the source with the given name.
func (c *Config) Source(name string) (SourceConfig, bool) {
	for _, s := range c.Sources {
		if s.Name == name {
			return s, true
		}
	}
	return SourceConfig{}, false
}

// Save saves a configuration to a YAML file
func Save(filePath string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := content[start+2 : end]
		content = content[:start] + os.Getenv(varName) + content[end+1:]
	}
	return content
}
