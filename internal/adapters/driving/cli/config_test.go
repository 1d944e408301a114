package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mdpaste/internal/adapters/driven/config/file"
	"github.com/custodia-labs/mdpaste/internal/core/domain"
	"github.com/custodia-labs/mdpaste/internal/core/services"
)

func TestConfigCmd_Use(t *testing.T) {
	assert.Equal(t, "config", configCmd.Use)
	assert.Equal(t, "get KEY", configGetCmd.Use)
	assert.Equal(t, "set KEY VALUE", configSetCmd.Use)
}

func TestConfigCmd_ShowDefaults(t *testing.T) {
	cleanup := setupTestServices(t, nil)
	defer cleanup()

	stdout, _, err := executeCommand("config", "show")

	require.NoError(t, err)
	assert.Contains(t, stdout, "config.toml")
	assert.Contains(t, stdout, "verbose = false")
	assert.Contains(t, stdout, "paste.workers = 1")
	assert.Contains(t, stdout, "watch.settle_ms = 300")
}

func TestConfigCmd_SetThenGet(t *testing.T) {
	cleanup := setupTestServices(t, nil)
	defer cleanup()

	stdout, _, err := executeCommand("config", "set", "paste.workers", "4")
	require.NoError(t, err)
	assert.Equal(t, "paste.workers = 4\n", stdout)

	stdout, _, err = executeCommand("config", "get", "paste.workers")
	require.NoError(t, err)
	assert.Equal(t, "4\n", stdout)

	stdout, _, err = executeCommand("config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "paste.workers = 4")
}

func TestConfigCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"set unknown key", []string{"config", "set", "nope", "1"}, domain.ErrNotFound},
		{"get unknown key", []string{"config", "get", "nope"}, domain.ErrNotFound},
		{"set invalid workers", []string{"config", "set", "paste.workers", "0"}, domain.ErrInvalidInput},
		{"set non-integer", []string{"config", "set", "watch.settle_ms", "soon"}, domain.ErrInvalidInput},
		{"set non-bool", []string{"config", "set", "verbose", "maybe"}, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestServices(t, nil)
			defer cleanup()

			_, _, err := executeCommand(tt.args...)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfigCmd_NoService(t *testing.T) {
	cleanup := setupTestServices(t, nil)
	defer cleanup()
	settingsService = nil

	_, _, err := executeCommand("config", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

func TestSettingValue(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Verbose = true

	value, ok := settingValue(&settings, "verbose")
	assert.True(t, ok)
	assert.Equal(t, "true", value)

	_, ok = settingValue(&settings, "paste")
	assert.False(t, ok)
}

func TestConfigCmd_SetRepairsInvalidFile(t *testing.T) {
	cleanup := setupTestServices(t, nil)
	defer cleanup()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[paste]\nworkers = 0\n"), 0o600))
	store, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	settingsService = services.NewSettingsService(store)

	_, _, err = executeCommand("config", "show")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = executeCommand("config", "set", "paste.workers", "2")
	require.NoError(t, err)

	stdout, _, err := executeCommand("config", "get", "paste.workers")
	require.NoError(t, err)
	assert.Equal(t, "2\n", stdout)
}
