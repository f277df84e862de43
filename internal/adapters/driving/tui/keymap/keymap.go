// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Load loads the typed path, or searches when it is already loaded.
	Load key.Binding

	// Find runs the search on the loaded document.
	Find key.Binding

	// OpenAll opens every link after confirmation.
	OpenAll key.Binding

	// OpenSelected opens the highlighted row.
	OpenSelected key.Binding

	// Picker opens the file picker.
	Picker key.Binding

	// Focus switches between the path input and the table.
	Focus key.Binding

	// Up navigates up in the table.
	Up key.Binding

	// Down navigates down in the table.
	Down key.Binding

	// Confirm accepts a prompt.
	Confirm key.Binding

	// Cancel rejects a prompt.
	Cancel key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Load: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "load"),
		),
		Find: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "find GIFs"),
		),
		OpenAll: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open all"),
		),
		OpenSelected: key.NewBinding(
			key.WithKeys("o", "enter"),
			key.WithHelp("o", "open"),
		),
		Picker: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pick file"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch focus"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Load, k.Focus, k.Help, k.Quit}
}

// ResultsHelp returns keybindings for the result table.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.OpenSelected, k.OpenAll, k.Find, k.Picker, k.Help}
}

// ConfirmHelp returns keybindings for the open-all prompt.
func (k *KeyMap) ConfirmHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Load, k.Find, k.Picker, k.Focus},
		{k.Up, k.Down, k.OpenSelected, k.OpenAll},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
