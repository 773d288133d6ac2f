package kernel

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	yaml "github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"

	"intrsim/internal/memory"
)

// Config mirrors config.yml
type Config struct {
	ContextSaveMS int   `yaml:"context_save_ms"` // 10 (by default)
	VectorBase    int   `yaml:"vector_base"`     // 0 (by default)
	VectorSize    int   `yaml:"vector_size"`     // 2 (by default)
	ForkVector    int   `yaml:"fork_vector"`     // 2 (by default)
	ExecVector    int   `yaml:"exec_vector"`     // 3 (by default)
	LoadMSPerMB   int   `yaml:"load_ms_per_mb"`  // 15 (by default)
	RandomMinMS   int   `yaml:"random_min_ms"`   // 1 (by default)
	RandomMaxMS   int   `yaml:"random_max_ms"`   // 10 (by default)
	Seed          int64 `yaml:"seed"`            // 0 = seed from the wall clock
	Partitions    []int `yaml:"partitions"`      // MB, partition 1 first
}

// DefaultConfig is used when no config file is given.
func DefaultConfig() Config {
	return Config{
		ContextSaveMS: 10,
		VectorBase:    0,
		VectorSize:    2,
		ForkVector:    2,
		ExecVector:    3,
		LoadMSPerMB:   15,
		RandomMinMS:   1,
		RandomMaxMS:   10,
		Partitions:    append([]int(nil), memory.DefaultLayout...),
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only.
// A missing file also yields defaults, but a file that does not parse is an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logrus.Warnf("config: %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	// sanity clamps
	if cfg.ContextSaveMS < 0 {
		cfg.ContextSaveMS = 10
	}
	if cfg.VectorSize <= 0 {
		cfg.VectorSize = 2
	}
	if cfg.LoadMSPerMB < 0 {
		cfg.LoadMSPerMB = 15
	}
	if cfg.RandomMinMS < 0 {
		cfg.RandomMinMS = 1
	}
	if cfg.RandomMaxMS < cfg.RandomMinMS {
		cfg.RandomMaxMS = cfg.RandomMinMS
	}
	if len(cfg.Partitions) == 0 {
		cfg.Partitions = append([]int(nil), memory.DefaultLayout...)
	}

	return cfg, nil
}

// Timing returns the ISR entry costs described by the config.
func (c Config) Timing() ISRTiming {
	return ISRTiming{
		ContextSave: c.ContextSaveMS,
		VectorBase:  c.VectorBase,
		VectorSize:  c.VectorSize,
	}
}
