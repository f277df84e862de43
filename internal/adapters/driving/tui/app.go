package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/views/exporter"
	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/views/picker"
	"github.com/custodia-labs/gifex/internal/core/domain"
	"github.com/custodia-labs/gifex/internal/core/session"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the key bindings shared by the views.
	keymap *keymap.KeyMap

	// exporterView is the path input, banners and result table.
	exporterView *exporter.View

	// pickerView is the file picker.
	pickerView *picker.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// settings are the settings in effect.
	settings domain.AppSettings

	// err holds the last error that occurred outside the exporter session.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	exporterView := exporter.NewView(s, km, exporter.Services{
		Loader:   ports.Loader,
		Finder:   ports.Finder,
		Dispatch: ports.Dispatch,
		Watch:    ports.Watch,
	})
	pickerView := picker.NewView(s, km, "")

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		exporterView: exporterView,
		pickerView:   pickerView,
		currentView:  messages.ViewExporter,
		settings:     domain.DefaultAppSettings(),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.exporterView.WithContext(ctx)
	return a
}

// WithFile loads path on start. With watch set the file is re-loaded
// whenever it changes on disk.
func (a *App) WithFile(path string, watch bool) *App {
	if path != "" {
		a.exporterView.SetPath(path)
	}
	a.exporterView.SetWatch(watch)
	return a
}

// Init implements tea.Model.
// Settings are applied before the first file is loaded.
func (a *App) Init() tea.Cmd {
	return tea.Sequence(
		a.loadSettings(),
		tea.Batch(
			tea.SetWindowTitle("gifex - Discord GIF Exporter"),
			a.exporterView.Init(),
		),
	)
}

// loadSettings reads the settings when a settings service is configured.
func (a *App) loadSettings() tea.Cmd {
	if a.ports.Settings == nil {
		return nil
	}
	settingsService := a.ports.Settings
	return func() tea.Msg {
		settings, err := settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		a.pickerView, cmd = a.pickerView.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			a.exporterView.Close()
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewExporter:
			a.exporterView, cmd = a.exporterView.Update(msg)
			return a, cmd

		case messages.ViewPicker:
			a.pickerView, cmd = a.pickerView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			// Any of esc, ? or q leaves help
			if msg.Type == tea.KeyEsc || msg.String() == "?" || msg.String() == "q" {
				a.currentView = messages.ViewExporter
			}
			return a, nil
		}
		return a, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			a.err = fmt.Errorf("loading settings: %w", msg.Err)
			return a, nil
		}
		if msg.Settings != nil {
			a.settings = *msg.Settings
			a.exporterView.SetSettings(a.settings)
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewPicker {
			return a, a.pickerView.Init()
		}
		return a, nil

	case messages.FileSelected:
		a.currentView = messages.ViewExporter
		a.exporterView, cmd = a.exporterView.Update(msg)
		return a, cmd

	case messages.FileLoaded, messages.SearchCompleted, messages.OpenCompleted,
		messages.LinkOpened, messages.FileChanged, messages.WatchStopped,
		messages.ErrorOccurred:
		// Session messages belong to the exporter whatever view is shown
		a.exporterView, cmd = a.exporterView.Update(msg)
		return a, cmd

	case messages.Quit:
		a.exporterView.Close()
		return a, tea.Quit
	}

	// Forward other messages (cursor blink, directory reads) to active view
	switch a.currentView {
	case messages.ViewExporter:
		a.exporterView, cmd = a.exporterView.Update(msg)
	case messages.ViewPicker:
		a.pickerView, cmd = a.pickerView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewExporter:
		return a.exporterView.View()
	case messages.ViewPicker:
		return a.pickerView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.exporterView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

File:
  (type)      Enter the path of package/Account/user.json
  enter       Load the file, or search again if it is loaded
  p           Pick a file from disk
  tab         Switch between the path and the table

Results:
  j/k, ↑/↓    Navigate GIFs
  o, enter    Open the selected GIF
  ctrl+o      Open all GIFs (asks first: one tab per GIF)
  f           Search the loaded file again

General:
  ?           Toggle help
  esc         Back
  q, ctrl+c   Quit

` + a.styles.Help.Render("[esc] back")
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.exporterView.Close()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// State returns the exporter session state.
func (a *App) State() session.State {
	return a.exporterView.State()
}

// Settings returns the settings in effect.
func (a *App) Settings() domain.AppSettings {
	return a.settings
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.exporterView.SetDimensions(width, height)
	a.pickerView.SetDimensions(width, height)
}
