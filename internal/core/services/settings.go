package services

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/custodia-labs/gifex/internal/core/domain"
	"github.com/custodia-labs/gifex/internal/core/ports/driven"
	"github.com/custodia-labs/gifex/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyContainerKey = "search.container_key"
	keyListKey      = "search.list_key"
	keyPolicy       = "search.policy"
	keyOpenTarget   = "open.target"
	keyOpenRate     = "open.rate"
	keyOpenBurst    = "open.burst"
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
// Missing or invalid stored values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			Path: domain.KeyPath{
				Container: s.getString(keyContainerKey, defaults.Search.Path.Container),
				List:      s.getString(keyListKey, defaults.Search.Path.List),
			},
			Policy: s.getPolicy(defaults.Search.Policy),
		},
		Open: domain.OpenSettings{
			Target: s.getTarget(defaults.Open.Target),
			Rate:   s.getRate(defaults.Open.Rate),
			Burst:  s.getInt(keyOpenBurst, defaults.Open.Burst),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: nil settings", domain.ErrInvalidInput)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	path := settings.Search.Path.Normalise()
	if err := s.configStore.Set(keyContainerKey, path.Container); err != nil {
		return fmt.Errorf("save container key: %w", err)
	}
	if err := s.configStore.Set(keyListKey, path.List); err != nil {
		return fmt.Errorf("save list key: %w", err)
	}
	if err := s.configStore.Set(keyPolicy, settings.Search.Policy.String()); err != nil {
		return fmt.Errorf("save policy: %w", err)
	}
	if err := s.configStore.Set(keyOpenTarget, settings.Open.Target.String()); err != nil {
		return fmt.Errorf("save open target: %w", err)
	}
	if err := s.configStore.Set(keyOpenRate, settings.Open.Rate); err != nil {
		return fmt.Errorf("save open rate: %w", err)
	}
	if err := s.configStore.Set(keyOpenBurst, settings.Open.Burst); err != nil {
		return fmt.Errorf("save open burst: %w", err)
	}

	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keyContainerKey:
		settings.Search.Path.Container = value
	case keyListKey:
		settings.Search.Path.List = value
	case keyPolicy:
		settings.Search.Policy = domain.ProjectionPolicy(value)
	case keyOpenTarget:
		settings.Open.Target = domain.OpenTarget(value)
	case keyOpenRate:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.Open.Rate = f
	case keyOpenBurst:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.Open.Burst = n
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys returns the config keys accepted by Set, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{keyContainerKey, keyListKey, keyPolicy, keyOpenTarget, keyOpenRate, keyOpenBurst}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Path returns where settings are stored.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getRate(defaultVal float64) float64 {
	if _, exists := s.configStore.Get(keyOpenRate); !exists {
		return defaultVal
	}
	rate := s.configStore.GetFloat(keyOpenRate)
	if rate < 0 {
		return defaultVal
	}
	return rate
}

func (s *SettingsService) getPolicy(defaultVal domain.ProjectionPolicy) domain.ProjectionPolicy {
	policy := domain.ProjectionPolicy(s.configStore.GetString(keyPolicy))
	if !policy.IsValid() {
		return defaultVal
	}
	return policy
}

func (s *SettingsService) getTarget(defaultVal domain.OpenTarget) domain.OpenTarget {
	target := domain.OpenTarget(s.configStore.GetString(keyOpenTarget))
	if !target.IsValid() {
		return defaultVal
	}
	return target
}
