package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mdpaste/internal/core/domain"
	"github.com/custodia-labs/mdpaste/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change mdpaste configuration.

Keys:
  verbose          enable verbose logging (true/false)
  paste.workers    images written concurrently per paste (default 1)
  watch.settle_ms  quiet period before a dropped file is pasted (default 300)`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if path := settingsService.Path(); path != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", path)
	}
	for _, key := range settingsService.Keys() {
		value, _ := settingValue(settings, key)
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	value, ok := settingValue(settings, args[0])
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrNotFound, args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
	return nil
}

func settingValue(settings *domain.AppSettings, key string) (string, bool) {
	switch key {
	case services.KeyVerbose:
		return strconv.FormatBool(settings.Verbose), true
	case services.KeyPasteWorkers:
		return strconv.Itoa(settings.Paste.Workers), true
	case services.KeyWatchSettleMs:
		return strconv.Itoa(settings.Watch.SettleMs), true
	default:
		return "", false
	}
}
