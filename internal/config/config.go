// Package config loads server configuration from an optional TOML
// file, following the same unmarshal-onto-a-plain-struct approach the
// rest of this codebase's test harness uses.
package config

import (
	"errors"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds every tunable the server recognizes. Fields absent
// from a loaded TOML file keep their default value.
type Config struct {
	ListenAddr     string
	IdleTimeoutMs  int64
	MaxLoadFactor  uint64
	RehashBatch    uint64
	MaxFrameLen    int
	ZSetQueryLimit int64
}

// Default returns a Config with sane defaults, matching the values
// the core packages use when constructed directly.
func Default() *Config {
	return &Config{
		ListenAddr:     ":6969",
		IdleTimeoutMs:  60_000,
		MaxLoadFactor:  8,
		RehashBatch:    128,
		MaxFrameLen:    4096,
		ZSetQueryLimit: 100,
	}
}

// Load reads path, overlaying any keys it sets onto the defaults.
// A missing file is not an error; Load simply returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, err
	}
	return cfg, validate(cfg)
}

func validate(cfg *Config) error {
	if cfg.IdleTimeoutMs <= 0 {
		return errors.New("config: IdleTimeoutMs must be positive")
	}
	if cfg.MaxLoadFactor == 0 {
		return errors.New("config: MaxLoadFactor must be positive")
	}
	if cfg.RehashBatch == 0 {
		return errors.New("config: RehashBatch must be positive")
	}
	if cfg.MaxFrameLen <= 0 {
		return errors.New("config: MaxFrameLen must be positive")
	}
	if cfg.ZSetQueryLimit <= 0 {
		return errors.New("config: ZSetQueryLimit must be positive")
	}
	return nil
}
