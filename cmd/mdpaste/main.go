// Command mdpaste saves pasted images next to Markdown documents.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/mdpaste/internal/adapters/driven/clipboard"
	"github.com/custodia-labs/mdpaste/internal/adapters/driven/config/file"
	"github.com/custodia-labs/mdpaste/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/mdpaste/internal/adapters/driven/storage/assets"
	"github.com/custodia-labs/mdpaste/internal/adapters/driving/cli"
	"github.com/custodia-labs/mdpaste/internal/core/domain"
	"github.com/custodia-labs/mdpaste/internal/core/ports/driven"
	"github.com/custodia-labs/mdpaste/internal/core/services"
	"github.com/custodia-labs/mdpaste/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetServiceFactory(buildServices)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildServices wires the driven adapters into the core services.
func buildServices(configDir string) (*cli.Services, error) {
	var configStore driven.ConfigStore
	fileStore, err := file.NewConfigStore(configDir)
	switch {
	case err == nil:
		configStore = fileStore
	case configDir == "":
		// No usable home directory; settings last for this run only.
		logger.Warn("opening config: %v; using defaults", err)
		configStore = memory.NewConfigStore(nil)
	default:
		return nil, fmt.Errorf("opening config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		// Keep running on defaults so `config set` can repair the file.
		logger.Warn("%v; using defaults", err)
		defaults := domain.DefaultAppSettings()
		settings = &defaults
	}

	pasteService := services.NewPasteService(assets.NewStore())
	pasteService.SetWorkers(settings.Paste.Workers)
	logger.Debug("paste workers: %d", pasteService.Workers())

	return &cli.Services{
		Paste:     pasteService,
		Settings:  settingsService,
		Clipboard: clipboard.NewSystem(),
	}, nil
}
