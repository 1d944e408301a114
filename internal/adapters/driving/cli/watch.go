package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mdpaste/internal/adapters/driven/payload"
	"github.com/custodia-labs/mdpaste/internal/connectors/filesystem"
	"github.com/custodia-labs/mdpaste/internal/core/domain"
	"github.com/custodia-labs/mdpaste/internal/logger"
)

var watchAppend bool

var watchCmd = &cobra.Command{
	Use:   "watch DOCUMENT DROPDIR",
	Short: "Paste images dropped into a folder",
	Long: `Watches DROPDIR and pastes every image written into it into DOCUMENT,
as if it had been dropped onto the editor. An image is picked up once no
further writes arrive for watch.settle_ms milliseconds.

Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchAppend, "append", false, "also append the Markdown to DOCUMENT")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if pasteService == nil {
		return errors.New("paste service not configured")
	}

	docPath, err := resolveDocument(args[0])
	if err != nil {
		return err
	}
	if docPath == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: the document must be saved to a local file before pasting images.")
		return nil
	}

	dropDir, err := filesystem.ResolvePath(args[1])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[1], err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	watcher := filesystem.NewDropWatcher(dropDir, watchSettleDelay())
	defer watcher.Close()

	events, err := watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watching %s: %w", dropDir, err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for images to paste into %s\n", watcher.Dir(), docPath)

	for event := range events {
		p := payload.New().Add(domain.FilesMIMEType, payload.FileItem{
			Handle: payload.NewDiskFile(filepath.Base(event.Path), event.Path).WithOrigin(),
		})
		if err := pasteAndReport(ctx, cmd, docPath, p, watchAppend); err != nil {
			logger.Warn("paste of %s failed: %v", event.Path, err)
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}

	return nil
}

func watchSettleDelay() time.Duration {
	defaults := domain.DefaultAppSettings()
	if settingsService == nil {
		return defaults.Watch.SettleDelay()
	}
	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("loading settings: %v", err)
		return defaults.Watch.SettleDelay()
	}
	return settings.Watch.SettleDelay()
}
