// Package config loads runtime settings from the environment and optional
// YAML files. Settings are plain injected values; nothing in here is a
// process-wide singleton.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds runtime settings for an evaluation service or CLI run.
type Config struct {
	// DatasetPath points at a JSON/YAML dataset file. Empty means the
	// built-in dataset.
	DatasetPath string `env:"PREFMESH_DATASET" yaml:"dataset_path"`

	// Provider selects the scoring collaborator: mock, openai or anthropic.
	Provider string `env:"PREFMESH_PROVIDER" yaml:"provider"`

	// Model overrides the provider's default model id.
	Model string `env:"PREFMESH_MODEL" yaml:"model"`

	// MaxConcurrent limits simultaneous scoring calls.
	MaxConcurrent int `env:"PREFMESH_MAX_CONCURRENT" yaml:"max_concurrent"`

	// CallTimeout is the uniform per-call scoring timeout.
	CallTimeout time.Duration `env:"PREFMESH_CALL_TIMEOUT" yaml:"call_timeout"`

	// RetryMaxAttempts is the total scoring attempts per agent, including
	// the first.
	RetryMaxAttempts int `env:"PREFMESH_RETRY_MAX_ATTEMPTS" yaml:"retry_max_attempts"`

	// RetryInitialBackoff is the wait before the first retry.
	RetryInitialBackoff time.Duration `env:"PREFMESH_RETRY_INITIAL_BACKOFF" yaml:"retry_initial_backoff"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"PREFMESH_LOG_LEVEL" yaml:"log_level"`

	// LogFormat is json or text.
	LogFormat string `env:"PREFMESH_LOG_FORMAT" yaml:"log_format"`
}

// applyDefaults fills unset fields. Defaults are applied last so values from
// YAML are never overwritten, unlike envDefault tags which stomp
// pre-populated structs.
func (c *Config) applyDefaults() {
	if c.Provider == "" {
		c.Provider = "mock"
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = 8
	}
	if c.CallTimeout == 0 {
		c.CallTimeout = 30 * time.Second
	}
	if c.RetryMaxAttempts == 0 {
		c.RetryMaxAttempts = 3
	}
	if c.RetryInitialBackoff == 0 {
		c.RetryInitialBackoff = 500 * time.Millisecond
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFile reads a YAML config file and then applies environment overrides
// on top, so the environment always wins.
func LoadFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Provider {
	case "mock", "openai", "anthropic":
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("max_concurrent must be at least 1")
	}
	if c.RetryMaxAttempts < 1 {
		return fmt.Errorf("retry_max_attempts must be at least 1")
	}
	return nil
}
