// Package config loads the engine's YAML configuration, falling back to
// defaults when no file is present.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/hexfield/internal/mapgen"
)

// Config holds everything a host needs to build and generate a map.
type Config struct {
	// Grid size in render chunks (5x5 cells each).
	ChunkCountX int `yaml:"chunk_count_x"`
	ChunkCountZ int `yaml:"chunk_count_z"`

	// WithChunks builds the render-chunk partition alongside the cells.
	WithChunks bool `yaml:"with_chunks"`

	// Territories is the number of partitions carved after generation.
	Territories int `yaml:"territories"`

	// SnapshotPath is the SQLite file generated maps are saved to;
	// empty disables persistence.
	SnapshotPath string `yaml:"snapshot_path"`

	Generator mapgen.Config `yaml:"generator"`
}

// Default returns the stock configuration: a 40x30 cell map, chunked,
// eight territories, no snapshot.
func Default() Config {
	return Config{
		ChunkCountX: 8,
		ChunkCountZ: 6,
		WithChunks:  true,
		Territories: 8,
		Generator:   mapgen.DefaultConfig(),
	}
}

// Load reads configuration from a YAML file. A missing file returns the
// defaults; a malformed one returns an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.ChunkCountX <= 0 || c.ChunkCountZ <= 0 {
		return fmt.Errorf("chunk counts must be positive, got %d x %d", c.ChunkCountX, c.ChunkCountZ)
	}
	if c.Territories <= 0 {
		return fmt.Errorf("territories must be positive, got %d", c.Territories)
	}
	if p := c.Generator.LandPercentage; p < 0 || p > 100 {
		return fmt.Errorf("land percentage must be in [0, 100], got %d", p)
	}
	return nil
}
