package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gifex/internal/core/domain"
)

func TestSettingsCmd_Show(t *testing.T) {
	setupTestServices(t)

	stdout, _, err := executeCommand("", "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Current Settings")
	assert.Contains(t, stdout, "Container key: favoriteGifs")
	assert.Contains(t, stdout, "List key: gifs")
	assert.Contains(t, stdout, "Policy: skip")
	assert.Contains(t, stdout, "Target: src")
	assert.Contains(t, stdout, "Rate: 4 links/s")
	assert.Contains(t, stdout, "Burst: 1")
	assert.Contains(t, stdout, "Config file: :memory:")
}

func TestSettingsCmd_DefaultsToShow(t *testing.T) {
	setupTestServices(t)

	stdout, _, err := executeCommand("", "settings")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Current Settings")
}

func TestSettingsCmd_ShowUnpaced(t *testing.T) {
	_, settings := setupTestServices(t)
	require.NoError(t, settings.Set("open.rate", "0"))

	stdout, _, err := executeCommand("", "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Rate: unpaced")
}

func TestSettingsCmd_Set(t *testing.T) {
	_, settings := setupTestServices(t)

	stdout, _, err := executeCommand("", "settings", "set", "search.policy", "keep")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Set search.policy to keep")
	got, err := settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.PolicyKeep, got.Search.Policy)
}

func TestSettingsCmd_SetErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown key", []string{"settings", "set", "search.depth", "3"}, "keys: open.burst"},
		{"invalid policy", []string{"settings", "set", "search.policy", "lenient"}, "failed to set search.policy"},
		{"rate not a number", []string{"settings", "set", "open.rate", "fast"}, "must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t)

			_, _, err := executeCommand("", tt.args...)

			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestSettingsCmd_SetNeedsTwoArgs(t *testing.T) {
	setupTestServices(t)

	_, _, err := executeCommand("", "settings", "set", "search.policy")

	assert.Error(t, err)
}

func TestSettingsCmd_NoService(t *testing.T) {
	setupTestServices(t)
	settingsService = nil

	_, _, err := executeCommand("", "settings", "show")

	assert.ErrorContains(t, err, "settings service not configured")
}
