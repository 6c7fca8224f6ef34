// Package config defines service configuration structures and loading
// hooks.
//
// Conventions:
// - Defaults live in New; Load layers file and env on top.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// PlatformURL is the base URL of the hosted data platform.
	PlatformURL string `koanf:"platform_url"`

	// PlatformKey is the platform's public (anonymous) API key.
	PlatformKey string `koanf:"platform_key"`

	// PlatformTimeoutMS bounds each platform request in milliseconds.
	PlatformTimeoutMS int `koanf:"platform_timeout_ms"`

	// RowLimit caps catalog list query result size.
	RowLimit int `koanf:"row_limit"`

	// SelectionPath overrides where the selected-drills file lives.
	// Empty means the user config directory.
	SelectionPath string `koanf:"selection_path"`
}

// Defaults.
const (
	defaultAddr              = ":8412"
	defaultPlatformTimeoutMS = 15_000
	defaultRowLimit          = 2000
)

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              defaultAddr,
		PlatformTimeoutMS: defaultPlatformTimeoutMS,
		RowLimit:          defaultRowLimit,
	}
}
