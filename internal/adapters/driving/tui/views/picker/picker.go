// Package picker provides the file picker view used to choose an export.
package picker

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/styles"
)

// AllowedTypes are the extensions the picker lets the user select.
var AllowedTypes = []string{".json"}

// View lists the files of a directory and reports the chosen one.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	picker filepicker.Model
	notice string
	width  int
	height int
	ready  bool
}

// NewView creates a picker starting in dir. An empty dir means the
// working directory.
func NewView(s *styles.Styles, km *keymap.KeyMap, dir string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	fp := filepicker.New()
	fp.AllowedTypes = AllowedTypes
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.Styles.Selected = fp.Styles.Selected.Foreground(s.Theme().Primary)
	fp.Styles.Cursor = fp.Styles.Cursor.Foreground(s.Theme().Primary)

	v := &View{
		styles: s,
		keymap: km,
		picker: fp,
		width:  80,
		height: 24,
	}
	v.SetDirectory(dir)
	return v
}

// SetDirectory changes the directory shown on the next Init.
func (v *View) SetDirectory(dir string) {
	if dir == "" {
		dir = "."
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	v.picker.CurrentDirectory = dir
}

// Directory returns the directory being listed.
func (v *View) Directory() string {
	return v.picker.CurrentDirectory
}

// Init reads the current directory.
func (v *View) Init() tea.Cmd {
	v.notice = ""
	return v.picker.Init()
}

// Update handles messages for the picker view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, v.keymap.Back) {
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewExporter} }
	}
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		v.SetDimensions(size.Width, size.Height)
	}

	var cmd tea.Cmd
	v.picker, cmd = v.picker.Update(msg)

	if selected, path := v.picker.DidSelectFile(msg); selected {
		v.notice = ""
		return v, func() tea.Msg { return messages.FileSelected{Path: path} }
	}
	if selected, _ := v.picker.DidSelectDisabledFile(msg); selected {
		v.notice = fmt.Sprintf("only %s files can be loaded", strings.Join(AllowedTypes, ", "))
	}

	return v, cmd
}

// View renders the picker.
func (v *View) View() string {
	sections := []string{
		v.styles.Title.Render("Select a JSON file"),
		v.styles.Muted.Render(v.picker.CurrentDirectory),
		"",
		v.picker.View(),
	}
	if v.notice != "" {
		sections = append(sections, "", v.styles.Warning.Render(v.notice))
	}
	sections = append(sections, "", v.styles.Help.Render("enter select · ←/h up · →/l open · esc back"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Notice returns the last warning shown.
func (v *View) Notice() string {
	return v.notice
}

// Ready returns whether the view has been sized.
func (v *View) Ready() bool {
	return v.ready
}
