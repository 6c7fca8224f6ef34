package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env
// vars. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if DRILLBOARD_CONFIG is set
//  3. env (prefix DRILLBOARD_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("DRILLBOARD_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: DRILLBOARD_ADDR, DRILLBOARD_PLATFORM_URL, ...
	// Keys map flat: DRILLBOARD_PLATFORM_URL -> platform_url.
	envProvider := env.Provider("DRILLBOARD_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "drillboard_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.PlatformURL == "" {
		return nil, fmt.Errorf("%w: platform_url must not be empty", ErrInvalidConfig)
	}
	if cfg.PlatformKey == "" {
		return nil, fmt.Errorf("%w: platform_key must not be empty", ErrInvalidConfig)
	}
	return &cfg, nil
}
