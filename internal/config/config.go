// Package config loads viewer configuration from the environment. Command
// line flags in main override whatever is set here.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the environment-sourced configuration, prefix ARVIEW_.
type Config struct {
	// Window size in pixels.
	Width  int `env:"WIDTH" envDefault:"960"`
	Height int `env:"HEIGHT" envDefault:"640"`
	// TPS is the frame-step rate of the render loop.
	TPS int `env:"TPS" envDefault:"60"`

	// AssetRef is the source loaded at startup and on a load request.
	AssetRef string `env:"ASSET" envDefault:""`

	// PlacementPolicy is "position" (keep the asset upright) or "pose"
	// (copy the reticle orientation too).
	PlacementPolicy string `env:"PLACEMENT_POLICY" envDefault:"position"`

	// Simulated session behavior.
	AcquireLatency time.Duration `env:"ACQUIRE_LATENCY" envDefault:"400ms"`
	LoadLatency    time.Duration `env:"LOAD_LATENCY" envDefault:"250ms"`
	// DenyHitTest makes the simulated session decline hit testing, leaving
	// ar sessions in permanent no-hit degraded mode.
	DenyHitTest bool `env:"DENY_HIT_TEST" envDefault:"false"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Debug    bool   `env:"DEBUG" envDefault:"false"`
}

// Load parses ARVIEW_-prefixed environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "ARVIEW_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the hosts cannot run with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("invalid tps: %d", c.TPS)
	}
	switch c.PlacementPolicy {
	case "position", "pose":
	default:
		return fmt.Errorf("invalid placement policy %q", c.PlacementPolicy)
	}
	return nil
}
