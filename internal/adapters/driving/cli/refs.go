package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mdpaste/internal/adapters/driven/markdown"
	"github.com/custodia-labs/mdpaste/internal/core/services"
)

var refsMissingOnly bool

var refsCmd = &cobra.Command{
	Use:   "refs DOCUMENT",
	Short: "List the images a document references",
	Long: `Lists every image referenced by DOCUMENT with its status:

  ok       the referenced file exists
  missing  the referenced file does not exist
  remote   the image is not a local file

Exits with an error when any local image is missing.`,
	Args: cobra.ExactArgs(1),
	RunE: runRefs,
}

func init() {
	refsCmd.Flags().BoolVar(&refsMissingOnly, "missing", false, "only list missing images")
	rootCmd.AddCommand(refsCmd)
}

func runRefs(cmd *cobra.Command, args []string) error {
	docPath, err := resolveDocument(args[0])
	if err != nil {
		return err
	}
	if docPath == "" {
		return errors.New("document must be a local file")
	}

	source, err := os.ReadFile(docPath)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}

	docDir := filepath.Dir(docPath)
	missing := 0
	for _, dest := range markdown.ImageDestinations(source) {
		status := "remote"
		if path, ok := services.ResolveReference(dest, docDir); ok {
			status = "ok"
			if _, err := os.Stat(path); err != nil {
				status = "missing"
				missing++
			}
		}
		if refsMissingOnly && status != "missing" {
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", status, dest)
	}

	if missing > 0 {
		return fmt.Errorf("%d missing image(s)", missing)
	}
	return nil
}
