package mcp

import (
	"context"

	"github.com/custodia-labs/mdpaste/internal/core/domain"
	"github.com/custodia-labs/mdpaste/internal/core/ports/driven"
	"github.com/custodia-labs/mdpaste/internal/core/ports/driving"
	"github.com/custodia-labs/mdpaste/internal/core/services"
)

// mockPasteService is a mock implementation of driving.PasteService.
type mockPasteService struct {
	result  *domain.PasteResult
	sources []domain.ImageSource
	err     error

	lastRequest driving.PasteRequest
}

func (m *mockPasteService) Paste(_ context.Context, req driving.PasteRequest) (*domain.PasteResult, error) {
	m.lastRequest = req
	return m.result, m.err
}

func (m *mockPasteService) Extract(ctx context.Context, p driven.Payload) ([]domain.ImageSource, error) {
	if m.sources != nil || m.err != nil {
		return m.sources, m.err
	}
	// Fall back to the real extractor so payload construction can be checked.
	return services.ExtractImageSources(ctx, p)
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	path     string
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Set(_, _ string) error {
	return m.err
}

func (m *mockSettingsService) Keys() []string {
	return []string{services.KeyVerbose, services.KeyPasteWorkers, services.KeyWatchSettleMs}
}

func (m *mockSettingsService) Path() string {
	return m.path
}
