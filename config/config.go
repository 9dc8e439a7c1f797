// Package config loads the lighthouse settings.
//
// Settings are layered: Default(), then the embedded assets/lighthouse.yaml,
// then an optional user file named by --config or MEMORYMORSE_CONFIG.
// Command-line flags are applied last by main.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"MemoryMorse/morse"
)

// EnvConfig names the environment variable holding a user config path.
const EnvConfig = "MEMORYMORSE_CONFIG"

// DefaultsAsset is the embedded defaults file.
const DefaultsAsset = "assets/lighthouse.yaml"

// ErrInvalidTiming is returned when a symbol duration is not positive.
var ErrInvalidTiming = errors.New("invalid morse timing")

// AppContentReader reads from the embedded file system.
type AppContentReader interface {
	ReadFile(name string) ([]byte, error)
}

// Config is the complete application configuration.
type Config struct {
	Timing   morse.Timing   `yaml:"timing"`
	Sweep    SweepConfig    `yaml:"sweep"`
	Audio    AudioConfig    `yaml:"audio"`
	Playlist PlaylistConfig `yaml:"playlist"`

	// Lang forces the UI language; empty means detect from the locale.
	Lang string `yaml:"lang"`
}

// SweepConfig drives the rotating beam.
type SweepConfig struct {
	StepDegrees float64       `yaml:"step_degrees"`
	Frame       time.Duration `yaml:"frame"`
}

// AudioConfig controls the Morse tone.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     int     `yaml:"volume"` // 0-100
	ToneHz     float64 `yaml:"tone_hz"`
	SampleRate int     `yaml:"sample_rate"`
	// Sample optionally replaces the generated sine with a looped .ogg file.
	Sample string `yaml:"sample"`
}

// PlaylistConfig controls what the lighthouse broadcasts.
type PlaylistConfig struct {
	// AutoAdvance moves to the next memory after every full pass.
	AutoAdvance bool `yaml:"auto_advance"`
	// Seed is the embedded JSONC file with the journal's starting memories.
	Seed string `yaml:"seed"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Timing: morse.DefaultTiming,
		Sweep: SweepConfig{
			StepDegrees: 0.2,
			Frame:       16 * time.Millisecond,
		},
		Audio: AudioConfig{
			Volume:     50,
			ToneHz:     600,
			SampleRate: 44100,
		},
		Playlist: PlaylistConfig{
			AutoAdvance: true,
			Seed:        "assets/memories.jsonc",
		},
	}
}

// Load builds the configuration from the embedded defaults and, when path
// is non-empty, a user file on disk. An empty path falls back to
// MEMORYMORSE_CONFIG.
func Load(reader AppContentReader, path string) (*Config, error) {
	cfg := Default()

	data, err := reader.ReadFile(DefaultsAsset)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", DefaultsAsset, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", DefaultsAsset, err)
	}

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the flasher and sweep depend on.
func (c *Config) Validate() error {
	if !c.Timing.Valid() {
		return fmt.Errorf("dot %s, dash %s, gaps %s/%s: %w",
			c.Timing.DotOn, c.Timing.DashOn, c.Timing.SymbolGap, c.Timing.WordGap, ErrInvalidTiming)
	}
	if c.Sweep.Frame <= 0 {
		return fmt.Errorf("sweep frame must be positive, got %s", c.Sweep.Frame)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("audio volume must be 0-100, got %d", c.Audio.Volume)
	}
	if c.Audio.ToneHz <= 0 || c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio tone %.0fHz at %d samples/s is not playable", c.Audio.ToneHz, c.Audio.SampleRate)
	}
	return nil
}
