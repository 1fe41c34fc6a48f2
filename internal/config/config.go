// Package config loads engine tunables from an optional YAML file,
// grounded on the pack's yaml.v3 usage (other_examples/trollfish-lichess)
// for configuration the way a real engine binary in this style does it:
// a small struct with yaml tags and a defaulted loader.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the engine's tunable knobs.
type Config struct {
	KingWeight      int32 `yaml:"king_weight"`
	TranspositionMB int64 `yaml:"transposition_mb"`
	DrawPlyLimit    int   `yaml:"draw_ply_limit"`
	DefaultDepth    int   `yaml:"default_depth"`
}

// Default returns the engine's built-in defaults.
func Default() Config {
	return Config{
		KingWeight:      2,
		TranspositionMB: 64,
		DrawPlyLimit:    80,
		DefaultDepth:    8,
	}
}

// TranspositionEntries converts the configured table size into an
// approximate entry count, assuming ~32 bytes per stored entry.
func (c Config) TranspositionEntries() int64 {
	const bytesPerEntry = 32
	return (c.TranspositionMB * 1024 * 1024) / bytesPerEntry
}

// Load reads a YAML config file at path, filling any field left zero
// with the corresponding default. A missing file is not an error: Load
// returns Default() unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if loaded.KingWeight != 0 {
		cfg.KingWeight = loaded.KingWeight
	}
	if loaded.TranspositionMB != 0 {
		cfg.TranspositionMB = loaded.TranspositionMB
	}
	if loaded.DrawPlyLimit != 0 {
		cfg.DrawPlyLimit = loaded.DrawPlyLimit
	}
	if loaded.DefaultDepth != 0 {
		cfg.DefaultDepth = loaded.DefaultDepth
	}
	return cfg, nil
}
