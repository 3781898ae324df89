// Package config loads engine defaults from TOML configuration files.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"cueplay/playback"
)

type Config struct {
	Volume           *float64 `koanf:"volume"`            // shared volume 0.0-1.0 (default: 1.0)
	Loop             bool     `koanf:"loop"`              // restart queue after the last track
	EstimatePosition *bool    `koanf:"estimate_position"` // timer-based position estimation (default: true)
	IntervalSeconds  float64  `koanf:"interval_seconds"`  // estimation tick interval (default: 1)
	SeekStepSeconds  float64  `koanf:"seek_step_seconds"` // fast-forward/rewind step (default: 10)
}

// Load reads configuration files in priority order (last wins).
func Load() (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{
		filepath.Join(xdg.ConfigHome, "cueplay", "config.toml"),
	}

	// ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// Options translates the configuration into playback options. Unset values
// keep the engine defaults.
func (c *Config) Options() []playback.Option {
	var opts []playback.Option

	if c.Volume != nil {
		opts = append(opts, playback.WithVolume(*c.Volume))
	}
	if c.Loop {
		opts = append(opts, playback.WithLoop(true))
	}
	if c.EstimatePosition != nil && !*c.EstimatePosition {
		opts = append(opts, playback.WithoutEstimation())
	} else if c.IntervalSeconds > 0 {
		opts = append(opts, playback.WithEstimation(secondsToDuration(c.IntervalSeconds)))
	}
	if c.SeekStepSeconds > 0 {
		opts = append(opts, playback.WithSeekStep(secondsToDuration(c.SeekStepSeconds)))
	}
	return opts
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
