package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/mdpaste/internal/adapters/driven/clipboard"
	"github.com/custodia-labs/mdpaste/internal/adapters/driven/payload"
	"github.com/custodia-labs/mdpaste/internal/connectors/filesystem"
	"github.com/custodia-labs/mdpaste/internal/core/domain"
	"github.com/custodia-labs/mdpaste/internal/core/ports/driving"
	"github.com/custodia-labs/mdpaste/internal/logger"
)

var (
	pasteURIList   string
	pasteClipboard bool
	pasteStdinMIME string
	pasteInline    []string
	pasteAppend    bool
)

// stdinIsTerminal reports whether stdin is interactive. Replaced in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var pasteCmd = &cobra.Command{
	Use:   "paste DOCUMENT [IMAGE...]",
	Short: "Paste images into a Markdown document",
	Long: `Saves images next to DOCUMENT under <document>_assets/ and prints the
Markdown image references to insert.

Images may be given as paths or file:// URIs (treated as a file drop), as a
text/uri-list, from the system clipboard, as raw bytes on stdin, or as files
to embed by value. Raw image data on stdin takes priority over everything
else, mirroring an editor paste of a screenshot.

Examples:
  mdpaste paste notes.md ~/Pictures/shot.png
  mdpaste paste notes.md --uri-list uris.txt
  xclip -o -t image/png | mdpaste paste notes.md --stdin-mime image/png
  mdpaste paste notes.md --clipboard --append`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPaste,
}

func init() {
	pasteCmd.Flags().StringVar(&pasteURIList, "uri-list", "",
		"read a text/uri-list from `PATH` (- for stdin)")
	pasteCmd.Flags().BoolVar(&pasteClipboard, "clipboard", false,
		"read file URIs or paths from the system clipboard")
	pasteCmd.Flags().StringVar(&pasteStdinMIME, "stdin-mime", "",
		"read raw image bytes of `TYPE` (image/png, image/jpeg, image/gif, image/webp) from stdin")
	pasteCmd.Flags().StringArrayVar(&pasteInline, "inline", nil,
		"embed the image at `PATH` by value (repeatable)")
	pasteCmd.Flags().BoolVar(&pasteAppend, "append", false,
		"also append the Markdown to DOCUMENT")
	rootCmd.AddCommand(pasteCmd)
}

func runPaste(cmd *cobra.Command, args []string) error {
	if pasteService == nil {
		return errors.New("paste service not configured")
	}

	docPath, err := resolveDocument(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	p, err := buildPastePayload(ctx, cmd.InOrStdin(), args[1:])
	if err != nil {
		return err
	}

	return pasteAndReport(ctx, cmd, docPath, p, pasteAppend)
}

// pasteAndReport runs one paste and prints its substitution. Outcomes the
// host falls through on are reported on stderr, not as errors.
func pasteAndReport(ctx context.Context, cmd *cobra.Command, docPath string, p *payload.Payload, appendDoc bool) error {
	result, err := pasteService.Paste(ctx, driving.PasteRequest{
		DocumentPath: docPath,
		Payload:      p,
	})
	switch {
	case errors.Is(err, domain.ErrNoImageSources):
		fmt.Fprintln(cmd.ErrOrStderr(), "No images to paste.")
		return nil
	case errors.Is(err, domain.ErrDocumentUnsaved):
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: the document must be saved to a local file before pasting images.")
		return nil
	case err != nil:
		return fmt.Errorf("paste failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Markdown)

	if appendDoc {
		if err := appendToDocument(docPath, result.Markdown); err != nil {
			return err
		}
	}
	return nil
}

// resolveDocument turns the DOCUMENT argument into an absolute path.
// Empty and non-file URIs name an unsaved document and resolve to "".
func resolveDocument(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", nil
	}
	if u, err := url.Parse(arg); err == nil && len(u.Scheme) > 1 {
		if path, ok := domain.FilePathFromURI(arg); ok {
			return path, nil
		}
		return "", nil
	}
	return filepath.Abs(arg)
}

func buildPastePayload(ctx context.Context, stdin io.Reader, images []string) (*payload.Payload, error) {
	if pasteURIList == "-" && pasteStdinMIME != "" {
		return nil, fmt.Errorf("%w: --uri-list - and --stdin-mime both read stdin", domain.ErrInvalidInput)
	}

	p := payload.New()

	if pasteStdinMIME != "" {
		item, err := readStdinImage(stdin, pasteStdinMIME)
		if err != nil {
			return nil, err
		}
		p.Set(pasteStdinMIME, item)
	}

	uriList, err := collectURIList(ctx, stdin)
	if err != nil {
		return nil, err
	}
	if uriList != "" {
		p.Set(domain.URIListMIMEType, payload.StringItem(uriList))
	}

	for _, arg := range images {
		path, err := filesystem.ResolvePath(arg)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", arg, err)
		}
		p.Add(domain.FilesMIMEType, payload.FileItem{
			Handle: payload.NewDiskFile(filepath.Base(path), path).WithOrigin(),
		})
	}

	for _, arg := range pasteInline {
		path, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", arg, err)
		}
		p.Add(domain.FilesMIMEType, payload.FileItem{
			Handle: payload.NewDiskFile(filepath.Base(path), path),
		})
	}

	logger.Debug("paste payload has %d entries", p.Len())
	return p, nil
}

func readStdinImage(stdin io.Reader, mimeType string) (payload.FileItem, error) {
	if !domain.IsDirectImageMIMEType(mimeType) {
		return payload.FileItem{}, fmt.Errorf("%w: --stdin-mime %q is not one of %s",
			domain.ErrInvalidInput, mimeType, strings.Join(domain.DirectImageMIMETypes, ", "))
	}
	if stdin == os.Stdin && stdinIsTerminal() {
		return payload.FileItem{}, fmt.Errorf("%w: --stdin-mime needs image data piped on stdin", domain.ErrInvalidInput)
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return payload.FileItem{}, fmt.Errorf("reading stdin: %w", err)
	}
	return payload.FileItem{Handle: payload.NewBytesFile("", data, "")}, nil
}

// collectURIList gathers the --uri-list and --clipboard inputs into one list.
func collectURIList(ctx context.Context, stdin io.Reader) (string, error) {
	var lists []string

	switch pasteURIList {
	case "":
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		lists = append(lists, string(data))
	default:
		data, err := os.ReadFile(pasteURIList)
		if err != nil {
			return "", fmt.Errorf("reading uri list: %w", err)
		}
		lists = append(lists, string(data))
	}

	if pasteClipboard {
		if clipboardReader == nil {
			return "", errors.New("clipboard not configured")
		}
		cp, err := clipboard.Payload(ctx, clipboardReader)
		if err != nil {
			return "", err
		}
		if item, ok := cp.Get(domain.URIListMIMEType); ok {
			text, err := item.String(ctx)
			if err != nil {
				return "", err
			}
			lists = append(lists, text)
		}
	}

	return strings.Join(lists, "\n"), nil
}

func appendToDocument(docPath, markdown string) error {
	f, err := os.OpenFile(docPath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, markdown); err != nil {
		return fmt.Errorf("appending to document: %w", err)
	}
	return nil
}
