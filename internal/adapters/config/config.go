// Package config loads runtime configuration from the environment, with an
// optional .env file for local overrides.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/oaspect/oaspect/internal/core/domain"
)

// Environment variable names.
const (
	EnvCacheDir          = "OASPECT_CACHE_DIR"
	EnvTTLSeconds        = "OASPECT_TTL_SECONDS"
	EnvFetchTimeout      = "OASPECT_FETCH_TIMEOUT_SECONDS"
	EnvRevalidateTimeout = "OASPECT_REVALIDATE_TIMEOUT_SECONDS"
	EnvMemoSize          = "OASPECT_MEMO_SIZE"
	EnvLogJSON           = "OASPECT_LOG_JSON"
)

// Defaults applied when the environment does not override them.
const (
	DefaultFetchTimeout      = 30 * time.Second
	DefaultRevalidateTimeout = 10 * time.Second
	DefaultMemoSize          = 32
)

// Config carries the runtime settings shared by the adapters.
type Config struct {
	CacheDir          string
	TTL               time.Duration
	FetchTimeout      time.Duration
	RevalidateTimeout time.Duration
	MemoSize          int
	LogJSON           bool
}

// Load reads configuration from the process environment. A .env file in the
// working directory is merged in first when present; a missing file is not an
// error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		CacheDir:          ".",
		TTL:               domain.DefaultTTL,
		FetchTimeout:      DefaultFetchTimeout,
		RevalidateTimeout: DefaultRevalidateTimeout,
		MemoSize:          DefaultMemoSize,
	}

	if dir := os.Getenv(EnvCacheDir); dir != "" {
		cfg.CacheDir = dir
	}
	if ttl, ok := envSeconds(EnvTTLSeconds); ok {
		cfg.TTL = ttl
	}
	if timeout, ok := envSeconds(EnvFetchTimeout); ok {
		cfg.FetchTimeout = timeout
	}
	if timeout, ok := envSeconds(EnvRevalidateTimeout); ok {
		cfg.RevalidateTimeout = timeout
	}
	if raw := os.Getenv(EnvMemoSize); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			cfg.MemoSize = size
		}
	}
	if raw := os.Getenv(EnvLogJSON); raw != "" {
		cfg.LogJSON, _ = strconv.ParseBool(raw)
	}

	return cfg, nil
}

func envSeconds(name string) (time.Duration, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || seconds <= 0 {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}
