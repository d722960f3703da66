package bvh

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config tunes a Tree's construction and insertion behavior. It is
// accepted by New and NewBuilder. Rebuild takes only a Strategy and
// reuses the Config the tree was created with; there is no way to pass a
// different Config at rebuild time.
type Config struct {
	// MaxLeafSize bounds payloads per leaf bucket. Larger means a
	// shallower tree, a faster build, and slower per-query refinement.
	MaxLeafSize int
	// MaxDepth is a hard ceiling on tree depth, bounding stack usage on
	// pathological input.
	MaxDepth int
	// EnableSAH selects SAH-style enlargement cost for on-line
	// insertion when true; a plain volume-enlargement heuristic when
	// false.
	EnableSAH bool
}

// DefaultConfig returns {MaxLeafSize: 8, MaxDepth: 32, EnableSAH: true},
// the defaults named in spec.md §6.
func DefaultConfig() Config {
	return Config{MaxLeafSize: 8, MaxDepth: 32, EnableSAH: true}
}

// validate reports ErrInvalidConfig for non-positive bounds.
func (c Config) validate() error {
	if c.MaxLeafSize <= 0 || c.MaxDepth <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// tomlConfig is the on-disk shape decoded by LoadConfig; BurntSushi/toml
// decodes directly into exported fields, so this mirrors Config with
// lowercase TOML keys via struct tags.
type tomlConfig struct {
	MaxLeafSize int  `toml:"max_leaf_size"`
	MaxDepth    int  `toml:"max_depth"`
	EnableSAH   bool `toml:"enable_sah"`
}

// LoadConfig decodes a Config from a TOML file. This is consumed only by
// cmd/bvhdebug; the library itself never touches the filesystem (spec.md
// §6: "no files").
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var raw tomlConfig
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return Config{}, err
	}

	cfg := Config{
		MaxLeafSize: raw.MaxLeafSize,
		MaxDepth:    raw.MaxDepth,
		EnableSAH:   raw.EnableSAH,
	}
	if cfg.MaxLeafSize == 0 {
		cfg.MaxLeafSize = DefaultConfig().MaxLeafSize
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = DefaultConfig().MaxDepth
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
