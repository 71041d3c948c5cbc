package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "results", cfg.ResultsDir)
	assert.Equal(t, "", cfg.AssetsDir)
	assert.Zero(t, cfg.Seed)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairing.yaml")
	data := `
listen: "127.0.0.1:9000"
assets_dir: "/srv/pairing/images"
log_level: debug
seed: 42
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.Equal(t, "/srv/pairing/images", cfg.AssetsDir)
	assert.Equal(t, "results", cfg.ResultsDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("listen: [unterminated"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	level := filepath.Join(dir, "level.yaml")
	require.NoError(t, os.WriteFile(level, []byte("log_level: loud\n"), 0o644))
	_, err = Load(level)
	assert.ErrorContains(t, err, "log_level")
}
