package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/mdpaste/internal/core/domain"
	"github.com/custodia-labs/mdpaste/internal/core/ports/driven"
	"github.com/custodia-labs/mdpaste/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyVerbose       = "verbose"
	KeyPasteWorkers  = "paste.workers"
	KeyWatchSettleMs = "watch.settle_ms"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.AppSettings{
		Verbose: s.configStore.GetBool(KeyVerbose),
		Paste: domain.PasteSettings{
			Workers: s.getInt(KeyPasteWorkers, defaults.Paste.Workers),
		},
		Watch: domain.WatchSettings{
			SettleMs: s.getInt(KeyWatchSettleMs, defaults.Watch.SettleMs),
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Set parses and stores a single setting.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return fmt.Errorf("%w: no config store", domain.ErrInvalidInput)
	}

	current, err := s.Get()
	if err != nil {
		defaults := domain.DefaultAppSettings()
		current = &defaults
	}

	var parsed any
	switch key {
	case KeyVerbose:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects true or false", domain.ErrInvalidInput, key)
		}
		current.Verbose = b
		parsed = b
	case KeyPasteWorkers:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects an integer", domain.ErrInvalidInput, key)
		}
		current.Paste.Workers = n
		parsed = n
	case KeyWatchSettleMs:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects an integer", domain.ErrInvalidInput, key)
		}
		current.Watch.SettleMs = n
		parsed = n
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrNotFound, key)
	}

	if err := current.Validate(); err != nil {
		return err
	}
	return s.configStore.Set(key, parsed)
}

// Keys lists the recognised configuration keys.
func (s *SettingsService) Keys() []string {
	return []string{KeyVerbose, KeyPasteWorkers, KeyWatchSettleMs}
}

// Path returns the config file location.
func (s *SettingsService) Path() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}
