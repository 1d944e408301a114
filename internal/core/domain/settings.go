package domain

import (
	"fmt"
	"time"
)

// AppSettings holds the host configuration. The paste pipeline itself reads
// none of it; hosts use it to set up services.
type AppSettings struct {
	// Verbose enables debug logging.
	Verbose bool

	Paste PasteSettings
	Watch WatchSettings
}

// PasteSettings configures the paste service.
type PasteSettings struct {
	// Workers is how many sources of one paste are written concurrently.
	Workers int
}

// WatchSettings configures the drop-folder watcher.
type WatchSettings struct {
	// SettleMs is how long a dropped file must stay unchanged before it is pasted.
	SettleMs int
}

// SettleDelay returns SettleMs as a duration.
func (w WatchSettings) SettleDelay() time.Duration {
	return time.Duration(w.SettleMs) * time.Millisecond
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Paste: PasteSettings{Workers: 1},
		Watch: WatchSettings{SettleMs: 300},
	}
}

// Validate checks that settings are usable.
func (s AppSettings) Validate() error {
	if s.Paste.Workers < 1 {
		return fmt.Errorf("%w: paste.workers must be at least 1, got %d", ErrInvalidInput, s.Paste.Workers)
	}
	if s.Watch.SettleMs < 0 {
		return fmt.Errorf("%w: watch.settle_ms must not be negative, got %d", ErrInvalidInput, s.Watch.SettleMs)
	}
	return nil
}
