package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tailscale/hujson"
)

// ConfigFileName is the config file looked up in the working directory when
// --config is not given.
const ConfigFileName = "movectl.jsonc"

// Config holds all configuration options.
type Config struct {
	StreamThreshold uint64       `json:"stream_threshold,omitempty"`
	Verify          VerifyConfig `json:"verify"`
	Bench           BenchConfig  `json:"bench"`
}

// VerifyConfig tunes the verify sweep. Zero values select the verify
// package defaults.
type VerifyConfig struct {
	MaxSmall  int   `json:"max_small,omitempty"`
	AlignSpan int   `json:"align_span,omitempty"`
	Large     []int `json:"large,omitempty"`
	Shifts    []int `json:"shifts,omitempty"`
}

// BenchConfig tunes the bench command.
type BenchConfig struct {
	Sizes       []int  `json:"sizes,omitempty"`
	MinDuration string `json:"min_duration,omitempty"`
	Shift       int    `json:"shift,omitempty"`
	SrcAlign    int    `json:"src_align,omitempty"`
	DstAlign    int    `json:"dst_align,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Bench: BenchConfig{
			Sizes:       []int{8, 16, 32, 64, 128, 256, 257, 1024, 4096, 32767, 32768, 1 << 20},
			MinDuration: "100ms",
		},
	}
}

// minDuration parses Bench.MinDuration.
func (c Config) minDuration() (time.Duration, error) {
	if c.Bench.MinDuration == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Bench.MinDuration)
	if err != nil {
		return 0, fmt.Errorf("invalid bench.min_duration: %w", err)
	}
	return d, nil
}

// LoadConfig reads path, or ConfigFileName in the working directory when path
// is empty, over the defaults. A missing default file is not an error. It
// returns the config and the path actually loaded.
func LoadConfig(path string) (Config, string, error) {
	explicit := path != ""
	if !explicit {
		path = ConfigFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), "", nil
		}
		return Config{}, "", fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return Config{}, "", fmt.Errorf("%s: %w", path, err)
	}
	return cfg, path, nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	cfg := DefaultConfig()
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cfg.minDuration(); err != nil {
		return Config{}, err
	}
	for _, n := range cfg.Bench.Sizes {
		if n <= 0 {
			return Config{}, fmt.Errorf("invalid bench.sizes: %d must be positive", n)
		}
	}
	for _, n := range cfg.Verify.Large {
		if n < 0 {
			return Config{}, fmt.Errorf("invalid verify.large: %d must not be negative", n)
		}
	}
	for _, shift := range cfg.Verify.Shifts {
		if shift < 0 {
			return Config{}, fmt.Errorf("invalid verify.shifts: %d must not be negative", shift)
		}
	}
	if cfg.Bench.SrcAlign < 0 || cfg.Bench.DstAlign < 0 {
		return Config{}, fmt.Errorf("invalid bench alignment: src_align %d, dst_align %d must not be negative",
			cfg.Bench.SrcAlign, cfg.Bench.DstAlign)
	}
	return cfg, nil
}
