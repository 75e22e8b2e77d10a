package config

import "errors"

// Sentinel kinds so callers can errors.Is on config failures.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("config load failed")
)
