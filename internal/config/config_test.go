package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "college", cfg.Routing.DestinationID)
	assert.Equal(t, "data/campus_graph.json", cfg.Routing.GraphFile)
	assert.Equal(t, 1000.0, cfg.Matching.CorridorWidthM)
	assert.Equal(t, 3, cfg.Matching.MaxCapacity)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Maps.APIKey)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CAMPUSRIDE_HTTP_ADDR", ":9090")
	t.Setenv("CAMPUSRIDE_MATCHING_MAX_CAPACITY", "5")
	t.Setenv("CAMPUSRIDE_ROUTING_DESTINATION_ID", "main-gate")

	cfg, err := load("")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 5, cfg.Matching.MaxCapacity)
	assert.Equal(t, "main-gate", cfg.Routing.DestinationID)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campusride.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: ":7070"
matching:
  corridor_width_m: 1500
log:
  format: text
`), 0o600))
	t.Setenv("CAMPUSRIDE_LOG_LEVEL", "debug")

	cfg, err := load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTP.Addr)
	assert.Equal(t, 1500.0, cfg.Matching.CorridorWidthM)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Matching.MaxCapacity)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
