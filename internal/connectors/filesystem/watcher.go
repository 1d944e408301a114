// Package filesystem watches a drop folder and reports images placed in it.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/mdpaste/internal/core/domain"
	"github.com/custodia-labs/mdpaste/internal/logger"
)

// ErrWatcherClosed is returned by Watch after Close.
var ErrWatcherClosed = errors.New("drop watcher closed")

// DropEvent reports an image that has settled in the drop folder.
type DropEvent struct {
	// Path is the absolute path of the dropped image.
	Path string
}

// DropWatcher watches a single directory for new or rewritten images.
// An image is reported once no further writes to it were seen for the
// settle delay, so files still being copied are not picked up half-written.
type DropWatcher struct {
	dir    string
	settle time.Duration

	mu      sync.Mutex
	closed  bool
	watcher *fsnotify.Watcher
}

// NewDropWatcher creates a watcher for dir.
func NewDropWatcher(dir string, settle time.Duration) *DropWatcher {
	return &DropWatcher{dir: dir, settle: settle}
}

// Dir returns the watched directory.
func (w *DropWatcher) Dir() string {
	return w.dir
}

// Validate checks that the drop folder exists and is a directory.
func (w *DropWatcher) Validate(_ context.Context) error {
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("drop folder: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: drop folder %s is not a directory", domain.ErrInvalidInput, w.dir)
	}
	return nil
}

// Watch starts watching and returns a channel of settled images. The channel
// is closed when ctx is cancelled or the watcher is closed.
func (w *DropWatcher) Watch(ctx context.Context) (<-chan DropEvent, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrWatcherClosed
	}
	if err := w.Validate(ctx); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", w.dir, err)
	}
	w.watcher = watcher

	out := make(chan DropEvent)
	go w.run(ctx, watcher, out)

	return out, nil
}

// settled is a settle timer firing for one generation of writes to path.
type settled struct {
	path string
	gen  int
}

// run forwards settled images until ctx ends or the fsnotify watcher closes.
// Every event starts a new generation; only the timer of a path's latest
// generation reports the file.
func (w *DropWatcher) run(ctx context.Context, watcher *fsnotify.Watcher, out chan<- DropEvent) {
	defer close(out)

	done := make(chan struct{})
	defer close(done)

	ready := make(chan settled)
	pending := make(map[string]int)
	gen := 0

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			path, ok := w.handleFsEvent(event)
			if !ok {
				continue
			}
			gen++
			pending[path] = gen
			s := settled{path: path, gen: gen}
			time.AfterFunc(w.settle, func() {
				select {
				case ready <- s:
				case <-done:
				}
			})

		case s := <-ready:
			if pending[s.path] != s.gen {
				continue
			}
			delete(pending, s.path)
			if !isRegularFile(s.path) {
				continue
			}
			logger.Debug("drop folder: %s settled", s.path)
			select {
			case out <- DropEvent{Path: s.path}:
			case <-ctx.Done():
				return
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("drop folder watcher: %v", err)
		}
	}
}

// handleFsEvent returns the image path an event concerns, if it should be
// considered for pasting. Removals, renames away and chmods are ignored.
func (w *DropWatcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if isHidden(event.Name) || !domain.IsSupportedImagePath(event.Name) {
		return "", false
	}
	if !isRegularFile(event.Name) {
		return "", false
	}

	path, err := filepath.Abs(event.Name)
	if err != nil {
		return "", false
	}
	return path, true
}

// Close stops the watcher. It is safe to call more than once.
func (w *DropWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

// isHidden reports dotfiles, which editors and copy tools use for temporaries.
func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
