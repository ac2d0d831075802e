package main

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/prefmesh/prefmesh"
	"github.com/prefmesh/prefmesh/config"
	"github.com/prefmesh/prefmesh/engine"
	"github.com/prefmesh/prefmesh/logging"
	"github.com/prefmesh/prefmesh/region"
	"github.com/prefmesh/prefmesh/scorer"
	scoreranthropic "github.com/prefmesh/prefmesh/scorer/anthropic"
	scoreropenai "github.com/prefmesh/prefmesh/scorer/openai"
)

// loadConfig reads the config file when given, otherwise the environment.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if rootFlags.configPath != "" {
		cfg, err = config.LoadFile(rootFlags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildLogger(cfg *config.Config) logging.Logger {
	level := logging.LogLevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = logging.LogLevelDebug
	case "warn":
		level = logging.LogLevelWarn
	case "error":
		level = logging.LogLevelError
	}
	return logging.NewSlogLogger(level, cfg.LogFormat, false)
}

// buildMesh wires the full stack from config: dataset, scorer with retry,
// engine tuning and logger.
func buildMesh(cfg *config.Config) (*prefmesh.Mesh, error) {
	logger := buildLogger(cfg)

	dataset := region.Default()
	if cfg.DatasetPath != "" {
		var err error
		dataset, err = region.LoadFile(cfg.DatasetPath)
		if err != nil {
			return nil, err
		}
	}

	return prefmesh.New(func(o *prefmesh.Options) {
		o.Dataset = dataset
		o.Logger = logger
		o.EngineConfig = engine.Config{
			MaxConcurrent: cfg.MaxConcurrent,
			CallTimeout:   cfg.CallTimeout,
		}
		o.Scorer = buildScorer(cfg, dataset, logger)
	})
}

func buildScorer(cfg *config.Config, dataset *region.Dataset, logger logging.Logger) scorer.Scorer {
	profiles := profileSource{profiles: dataset.Profiles()}

	var base scorer.Scorer
	switch cfg.Provider {
	case "openai":
		base = scoreropenai.NewScorer(profiles, func(o *scoreropenai.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
		})
	case "anthropic":
		base = scoreranthropic.NewScorer(profiles, func(o *scoreranthropic.Options) {
			if cfg.Model != "" {
				o.Model = anthropic.Model(cfg.Model)
			}
		})
	default:
		base = scorer.NewMockScorer()
	}

	policy := scorer.RetryPolicy{
		MaxAttempts:    cfg.RetryMaxAttempts,
		InitialBackoff: cfg.RetryInitialBackoff,
		Multiplier:     2,
	}
	return scorer.WithRetry(base, policy, logger)
}

// profileSource adapts a profile map to scorer.ProfileSource for provider
// construction ahead of the registry.
type profileSource struct {
	profiles map[string]region.Region
}

func (p profileSource) Profile(agentID string) (region.Region, error) {
	profile, ok := p.profiles[agentID]
	if !ok {
		return region.Region{}, fmt.Errorf("no profile for agent %s", agentID)
	}
	return profile, nil
}
