package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.ResultCount())
	assert.False(t, bar.Watching())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_InitAndUpdate(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Nil(t, bar.Init())

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_View_States(t *testing.T) {
	tests := []struct {
		state    State
		count    int
		expected string
	}{
		{StateReady, 0, "Ready"},
		{StateLoading, 0, "Loading..."},
		{StateSearching, 0, "Searching..."},
		{StateOpening, 12, "Opening 12 links..."},
		{StateConfirm, 12, "Open 12 tabs?"},
		{StateError, 0, "Error"},
		{StateResults, 3, "3 GIFs"},
		{StateEmpty, 0, "Empty list"},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(160)
			bar.SetState(tt.state)
			bar.SetResultCount(tt.count)

			assert.Contains(t, bar.View(), tt.expected)
		})
	}
}

func TestStatusBar_View_Hints(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(160)

	assert.Contains(t, bar.View(), "enter: load")

	bar.SetState(StateResults)
	bar.SetResultCount(2)
	assert.Contains(t, bar.View(), "ctrl+o: open all")

	bar.SetState(StateConfirm)
	assert.Contains(t, bar.View(), "y: yes")
}

func TestStatusBar_View_MessageAndWatching(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(160)
	bar.SetMessage("Opened 2 of 2 links")
	bar.SetWatching(true)

	view := bar.View()

	assert.Contains(t, view, "Opened 2 of 2 links")
	assert.Contains(t, view, "watching")
}

func TestStatusBar_View_NarrowWidth(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(10)

	assert.NotEmpty(t, bar.View())
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")
	bar.SetResultCount(4)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.ResultCount())
}

func TestStatusBar_Width(t *testing.T) {
	bar := NewBar(nil, nil)
	assert.Equal(t, 80, bar.Width())

	bar.SetWidth(120)
	assert.Equal(t, 120, bar.Width())
}
