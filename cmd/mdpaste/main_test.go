package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mdpaste/internal/core/services"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))
	return dir
}

func TestBuildServices_Defaults(t *testing.T) {
	svcs, err := buildServices(t.TempDir())

	require.NoError(t, err)
	require.NotNil(t, svcs.Paste)
	require.NotNil(t, svcs.Settings)
	require.NotNil(t, svcs.Clipboard)

	paste, ok := svcs.Paste.(*services.PasteService)
	require.True(t, ok)
	assert.Equal(t, services.DefaultWorkers, paste.Workers())
}

func TestBuildServices_AppliesConfiguredWorkers(t *testing.T) {
	dir := writeConfig(t, "[paste]\nworkers = 3\n")

	svcs, err := buildServices(dir)

	require.NoError(t, err)
	paste, ok := svcs.Paste.(*services.PasteService)
	require.True(t, ok)
	assert.Equal(t, 3, paste.Workers())
}

func TestBuildServices_InvalidConfigCanBeRepaired(t *testing.T) {
	dir := writeConfig(t, "[paste]\nworkers = 0\n")

	svcs, err := buildServices(dir)

	require.NoError(t, err, "an invalid value must not block the config commands")
	paste, ok := svcs.Paste.(*services.PasteService)
	require.True(t, ok)
	assert.Equal(t, services.DefaultWorkers, paste.Workers())

	_, err = svcs.Settings.Get()
	require.Error(t, err)

	require.NoError(t, svcs.Settings.Set(services.KeyPasteWorkers, "2"))

	settings, err := svcs.Settings.Get()
	require.NoError(t, err)
	assert.Equal(t, 2, settings.Paste.Workers)

	repaired, err := buildServices(dir)
	require.NoError(t, err)
	paste, ok = repaired.Paste.(*services.PasteService)
	require.True(t, ok)
	assert.Equal(t, 2, paste.Workers())
}

func TestBuildServices_UnusableConfigDir(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := buildServices(filepath.Join(blocker, "cfg"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening config")
}
