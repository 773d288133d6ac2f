package kernel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intrsim/internal/memory"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_EmptyPathGivesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, memory.DefaultLayout, cfg.Partitions)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
context_save_ms: 20
load_ms_per_mb: 5
seed: 7
partitions: [10, 30, 20]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.ContextSaveMS)
	assert.Equal(t, 5, cfg.LoadMSPerMB)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, []int{10, 30, 20}, cfg.Partitions)
	// untouched keys keep their defaults
	assert.Equal(t, 2, cfg.VectorSize)
	assert.Equal(t, 2, cfg.ForkVector)
	assert.Equal(t, 3, cfg.ExecVector)
}

func TestLoad_SanityClamps(t *testing.T) {
	path := writeConfig(t, `
context_save_ms: -1
vector_size: 0
random_min_ms: 5
random_max_ms: 2
partitions: []
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.ContextSaveMS)
	assert.Equal(t, 2, cfg.VectorSize)
	assert.Equal(t, 5, cfg.RandomMinMS)
	assert.Equal(t, 5, cfg.RandomMaxMS)
	assert.Equal(t, memory.DefaultLayout, cfg.Partitions)
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "context_save_ms: [unterminated")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaultConfig_PartitionsAreACopy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Partitions[0] = 1
	assert.Equal(t, 40, memory.DefaultLayout[0])
}

func TestSeededDelays(t *testing.T) {
	a, b := NewSeededDelays(42), NewSeededDelays(42)
	for i := 0; i < 50; i++ {
		v := a.Between(1, 10)
		assert.Equal(t, v, b.Between(1, 10))
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 10)
	}
	assert.Equal(t, int64(42), a.Seed())
	assert.NotZero(t, NewSeededDelays(0).Seed())
	assert.Equal(t, 4, a.Between(4, 4))
}

func TestFixedDelays_Clamps(t *testing.T) {
	assert.Equal(t, 3, FixedDelays(3).Between(1, 10))
	assert.Equal(t, 1, FixedDelays(0).Between(1, 10))
	assert.Equal(t, 10, FixedDelays(99).Between(1, 10))
}
