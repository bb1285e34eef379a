package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Iterations)
	assert.Equal(t, 3, cfg.Repeats)
	require.Len(t, cfg.Scenarios, 5)
	assert.Equal(t, "fanout-1x1", cfg.Scenarios[0].Name)
	assert.Equal(t, "batch-100x10", cfg.Scenarios[4].Name)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, "bench.yaml", `
iterations: 50
scenarios:
  - kind: fanout
    width: 4
    height: 2
  - name: switching
    kind: dynamic
    width: 8
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Iterations)
	assert.Equal(t, 3, cfg.Repeats, "missing fields keep their defaults")
	assert.Equal(t, []ScenarioConfig{
		{Name: "fanout-4x2", Kind: KindFanout, Width: 4, Height: 2},
		{Name: "switching", Kind: KindDynamic, Width: 8, Height: 1},
	}, cfg.Scenarios)
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeConfig(t, "bench.toml", `
iterations = 20
repeats = 1

[[scenarios]]
kind = "batch"
width = 16
height = 3
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Iterations)
	assert.Equal(t, 1, cfg.Repeats)
	assert.Equal(t, []ScenarioConfig{
		{Name: "batch-16x3", Kind: KindBatch, Width: 16, Height: 3},
	}, cfg.Scenarios)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		contents string
		errMsg   string
	}{
		{
			name:     "unknown extension",
			file:     "bench.json",
			contents: `{}`,
			errMsg:   "unsupported config format",
		},
		{
			name:     "bad yaml",
			file:     "bench.yaml",
			contents: "scenarios: [",
			errMsg:   "parse config",
		},
		{
			name:     "no scenarios",
			file:     "bench.yaml",
			contents: "iterations: 5\n",
			errMsg:   "no scenarios configured",
		},
		{
			name:     "unknown kind",
			file:     "bench.toml",
			contents: "[[scenarios]]\nkind = \"chaos\"\n",
			errMsg:   "invalid kind",
		},
		{
			name:     "negative size",
			file:     "bench.yaml",
			contents: "scenarios:\n  - kind: batch\n    width: -1\n",
			errMsg:   "invalid size",
		},
		{
			name:     "duplicate names",
			file:     "bench.yaml",
			contents: "scenarios:\n  - kind: batch\n  - kind: batch\n",
			errMsg:   "duplicate name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.file, tt.contents))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
