// Package cli implements the mdpaste command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/mdpaste/internal/core/ports/driven"
	"github.com/custodia-labs/mdpaste/internal/core/ports/driving"
	"github.com/custodia-labs/mdpaste/internal/logger"
)

var (
	version = "dev"

	verbose   bool
	configDir string
)

// Services used by the commands. Set by the service factory before a
// command runs, or directly by tests.
var (
	pasteService    driving.PasteService
	settingsService driving.SettingsService
	clipboardReader driven.Clipboard
)

// Services bundles the dependencies the commands run against.
type Services struct {
	Paste     driving.PasteService
	Settings  driving.SettingsService
	Clipboard driven.Clipboard
}

// ServiceFactory builds the services for a config directory.
// An empty configDir selects the default location.
type ServiceFactory func(configDir string) (*Services, error)

var serviceFactory ServiceFactory

var rootCmd = &cobra.Command{
	Use:   "mdpaste",
	Short: "Paste images into Markdown documents",
	Long: `mdpaste saves pasted or dropped images next to a Markdown document and
prints the Markdown image references to insert.

Each image is stored once under <document>_assets/, named after the SHA-256
of its bytes, so pasting the same image twice reuses the existing file.`,
	SilenceUsage:      true,
	PersistentPreRunE: configureServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.mdpaste)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServiceFactory registers the function that wires services before a
// command runs.
func SetServiceFactory(factory ServiceFactory) {
	serviceFactory = factory
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func configureServices(_ *cobra.Command, _ []string) error {
	if serviceFactory != nil {
		services, err := serviceFactory(configDir)
		if err != nil {
			return err
		}
		pasteService = services.Paste
		settingsService = services.Settings
		clipboardReader = services.Clipboard
	}

	logger.SetVerbose(verbose || configuredVerbose())
	return nil
}

func configuredVerbose() bool {
	if settingsService == nil {
		return false
	}
	settings, err := settingsService.Get()
	if err != nil {
		return false
	}
	return settings.Verbose
}
