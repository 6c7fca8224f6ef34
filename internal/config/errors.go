package config

import "errors"

// Sentinel kinds for configuration failures, matchable with errors.Is.
var (
	// ErrInvalidConfig marks a config that loaded but fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrLoadConfig wraps a failure reading any configuration layer.
	ErrLoadConfig = errors.New("configuration load failed")
)
