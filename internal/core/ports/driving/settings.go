package driving

import "github.com/custodia-labs/gifex/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save validates and persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting addressed by its config key,
	// e.g. "search.policy" or "open.rate".
	Set(key, value string) error

	// Keys returns the config keys accepted by Set, sorted.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Path returns where settings are stored.
	Path() string
}
