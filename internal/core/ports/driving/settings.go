package driving

import "github.com/custodia-labs/mdpaste/internal/core/domain"

// SettingsService manages host configuration.
type SettingsService interface {
	// Get returns the current settings, with defaults for unset keys.
	Get() (*domain.AppSettings, error)

	// Set parses value for key, validates it and persists it.
	Set(key, value string) error

	// Keys lists the recognised configuration keys.
	Keys() []string

	// Path returns where settings are persisted.
	Path() string
}
