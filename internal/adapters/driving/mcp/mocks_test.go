package mcp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gifex/internal/core/domain"
	"github.com/custodia-labs/gifex/internal/core/services"
)

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	GetFunc func() (*domain.AppSettings, error)
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.GetFunc != nil {
		return m.GetFunc()
	}
	settings := domain.DefaultAppSettings()
	return &settings, nil
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error { return nil }

func (m *mockSettingsService) Set(_, _ string) error { return nil }

func (m *mockSettingsService) Keys() []string { return nil }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

func (m *mockSettingsService) Path() string { return "" }

// newTestServer creates a server backed by the real loader and finder.
func newTestServer(t *testing.T, settings *mockSettingsService) *Server {
	t.Helper()
	ports := &Ports{
		Loader: services.NewLoaderService(),
		Finder: services.NewFinderService(),
	}
	if settings != nil {
		ports.Settings = settings
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

// writeExport writes content to a user.json file in a temp dir.
func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "user.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
