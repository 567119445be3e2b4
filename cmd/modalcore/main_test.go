package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/modalcore/internal/config"
)

func TestLoadConfigExplicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[editing]\nshift_width = 2\n"), 0o644))

	cfg, watch, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Editing.ShiftWidth)
	assert.Equal(t, path, watch)
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	_, _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err, "a missing explicit config is an error")
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	err := applyFlags(cfg, flags{logFile: "/tmp/x.log", logLevel: "debug", macros: "/tmp/m.json"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.log", cfg.Log.File)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/m.json", cfg.Macros.PersistPath)

	assert.Error(t, applyFlags(cfg, flags{logLevel: "loud"}), "invalid log level")
}
