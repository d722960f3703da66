package bvh

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bvh.toml")
	contents := "max_leaf_size = 16\nmax_depth = 24\nenable_sah = false\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Config{MaxLeafSize: 16, MaxDepth: 24, EnableSAH: false}
	if cfg != want {
		t.Fatalf("LoadConfig = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigMissingFileErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestDefaultConfigMatchesSpec(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxLeafSize != 8 || cfg.MaxDepth != 32 || !cfg.EnableSAH {
		t.Fatalf("DefaultConfig() = %+v, want {8 32 true}", cfg)
	}
}
