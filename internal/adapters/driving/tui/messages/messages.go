// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/gifex/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewExporter is the path input, banners and result table.
	ViewExporter ViewType = iota
	// ViewPicker is the file picker.
	ViewPicker
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewExporter:
		return "exporter"
	case ViewPicker:
		return "picker"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// FileSelected is sent when a file is chosen in the picker.
type FileSelected struct {
	Path string
}

// FileLoaded carries the outcome of a load back to the model.
// Request identifies the load so that only the latest one is applied.
type FileLoaded struct {
	Request  int
	Path     string
	Document *domain.Document
	Err      error
}

// SearchCompleted carries a search outcome for the document DocumentID.
type SearchCompleted struct {
	DocumentID string
	Result     *domain.Result
	Err        error
}

// OpenCompleted signals a bulk open finished.
type OpenCompleted struct {
	Report *domain.DispatchReport
	Err    error
}

// LinkOpened signals a single link was handed to the browser.
type LinkOpened struct {
	Link string
	Err  error
}

// FileChanged signals the watched file was written.
type FileChanged struct {
	Path string
}

// WatchStopped signals that watching Path ended.
type WatchStopped struct {
	Path string
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
