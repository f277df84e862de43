// Package exporter provides the main view of the TUI: the path input,
// the banners and the GIF table.
package exporter

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/components/table"
	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/gifex/internal/core/domain"
	"github.com/custodia-labs/gifex/internal/core/ports/driving"
	"github.com/custodia-labs/gifex/internal/core/session"
)

// Services are the core services the view calls.
type Services struct {
	Loader   driving.LoaderService
	Finder   driving.FinderService
	Dispatch driving.DispatchService
	Watch    driving.WatchService
}

// View is the exporter screen. Its data lives in a session.State that only
// changes through session.Update; the rest of the fields are UI state.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.PathInput
	table     *table.GifTable
	statusbar *status.Bar

	services Services
	settings domain.AppSettings
	ctx      context.Context

	state session.State

	// loadSeq numbers load requests; only the latest completion is applied.
	loadSeq int
	loading bool

	confirming bool

	watch       bool
	watchedPath string
	watchCancel context.CancelFunc
	changes     <-chan struct{}

	width      int
	height     int
	ready      bool
	focusInput bool
}

// NewView creates a new exporter view.
func NewView(s *styles.Styles, km *keymap.KeyMap, services Services) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewPathInput(s),
		table:      table.NewGifTable(s),
		statusbar:  status.NewBar(s, km),
		services:   services,
		settings:   domain.DefaultAppSettings(),
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetSettings sets the key path, policy and open options used by the view.
func (v *View) SetSettings(settings domain.AppSettings) {
	v.settings = settings
}

// SetWatch enables re-loading the file when it changes on disk.
func (v *View) SetWatch(watch bool) {
	v.watch = watch
}

// SetPath fills the path input.
func (v *View) SetPath(path string) {
	v.input.SetValue(path)
}

// Init initialises the view, loading the path already in the input.
func (v *View) Init() tea.Cmd {
	cmds := []tea.Cmd{v.input.Init()}
	if path := v.input.Path(); path != "" {
		cmds = append(cmds, v.Load(path))
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the exporter view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.FileSelected:
		v.input.SetValue(msg.Path)
		return v, v.Load(msg.Path)

	case messages.FileLoaded:
		return v, v.handleFileLoaded(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.OpenCompleted:
		v.handleOpenCompleted(msg)
		return v, nil

	case messages.LinkOpened:
		if msg.Err != nil {
			v.statusbar.SetMessage("open failed: " + msg.Err.Error())
		} else {
			v.statusbar.SetMessage("opened " + msg.Link)
		}
		return v, nil

	case messages.FileChanged:
		if msg.Path != v.watchedPath || v.changes == nil {
			return v, nil
		}
		return v, tea.Batch(v.Load(msg.Path), waitForChange(v.changes, msg.Path))

	case messages.WatchStopped:
		if msg.Path == v.watchedPath {
			v.stopWatch()
		}
		return v, nil

	case messages.ErrorOccurred:
		v.state = session.Update(v.state, session.SearchFailed{Err: msg.Err})
		v.syncStatus()
		return v, nil
	}

	// Forward other messages (cursor blink) to the input
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.confirming {
		return v.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, v.keymap.OpenAll):
		if v.state.Count() > 0 {
			v.confirming = true
			v.statusbar.SetState(status.StateConfirm)
		}
		return v, nil

	case key.Matches(msg, v.keymap.Focus):
		v.toggleFocus()
		return v, nil
	}

	if v.focusInput {
		return v.handleInputKey(msg)
	}
	return v.handleTableKey(msg)
}

// handleInputKey handles keys while the path input has focus.
func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Load):
		return v, v.submit()

	case key.Matches(msg, v.keymap.Back):
		if !v.table.IsEmpty() {
			v.toggleFocus()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleTableKey handles keys while the table has focus.
func (v *View) handleTableKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }

	case key.Matches(msg, v.keymap.Help):
		return v, changeView(messages.ViewHelp)

	case key.Matches(msg, v.keymap.Picker):
		return v, changeView(messages.ViewPicker)

	case key.Matches(msg, v.keymap.Find):
		return v, v.Find()

	case key.Matches(msg, v.keymap.OpenSelected):
		return v, v.openSelected()

	case key.Matches(msg, v.keymap.Back):
		v.toggleFocus()
		return v, nil
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

// handleConfirmKey answers the open-all prompt.
func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Confirm):
		v.confirming = false
		return v, v.OpenAll()
	case key.Matches(msg, v.keymap.Cancel):
		v.confirming = false
		v.statusbar.SetMessage("cancelled")
		v.syncStatus()
	}
	return v, nil
}

// submit loads the typed path, or searches again when that file is
// already loaded. With nothing typed it searches the current document,
// which reports that no file is loaded if there is none.
func (v *View) submit() tea.Cmd {
	path := v.input.Path()
	doc := v.state.Document
	if path == "" || (doc != nil && doc.Path == path) {
		return v.Find()
	}
	return v.Load(path)
}

// Load reads path in the background.
func (v *View) Load(path string) tea.Cmd {
	if v.services.Loader == nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: ErrNoLoaderService} }
	}

	v.loadSeq++
	req := v.loadSeq
	v.loading = true
	v.statusbar.SetState(status.StateLoading)
	v.statusbar.SetMessage("")

	ctx, loader := v.ctx, v.services.Loader
	return func() tea.Msg {
		doc, err := loader.LoadFile(ctx, path)
		return messages.FileLoaded{Request: req, Path: path, Document: doc, Err: err}
	}
}

// handleFileLoaded applies the latest load and starts a search on success.
func (v *View) handleFileLoaded(msg messages.FileLoaded) tea.Cmd {
	if msg.Request != v.loadSeq {
		return nil
	}
	v.loading = false

	if msg.Err != nil {
		v.state = session.Update(v.state, session.LoadFailed{Err: msg.Err})
		v.syncStatus()
		return nil
	}

	v.state = session.Update(v.state, session.Loaded{Document: msg.Document})
	v.table.SetRecords(nil)
	v.syncStatus()

	return tea.Batch(v.Find(), v.startWatch(msg.Path))
}

// Find searches the loaded document in the background.
func (v *View) Find() tea.Cmd {
	doc := v.state.Document
	if doc == nil {
		v.state = session.Update(v.state, session.SearchFailed{Err: domain.ErrNoDocument})
		v.table.SetRecords(nil)
		v.syncStatus()
		return nil
	}
	if v.services.Finder == nil {
		return nil
	}

	v.statusbar.SetState(status.StateSearching)
	ctx, finder := v.ctx, v.services.Finder
	path, policy := v.settings.Search.Path, v.settings.Search.Policy
	return func() tea.Msg {
		result, err := finder.Find(ctx, doc, path, policy)
		return messages.SearchCompleted{DocumentID: doc.ID, Result: result, Err: err}
	}
}

// handleSearchCompleted applies a search of the current document.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if v.state.Document == nil || msg.DocumentID != v.state.Document.ID {
		return
	}

	if msg.Err != nil {
		v.state = session.Update(v.state, session.SearchFailed{Err: msg.Err})
		v.table.SetRecords(nil)
	} else {
		v.state = session.Update(v.state, session.Searched{Result: msg.Result})
		v.table.SetRecords(msg.Result.Set.Records())
		if v.focusInput && !v.table.IsEmpty() {
			v.toggleFocus()
		}
	}
	v.syncStatus()
}

// OpenAll opens every link of the current result in the background.
func (v *View) OpenAll() tea.Cmd {
	if v.state.Count() == 0 {
		return nil
	}
	if v.services.Dispatch == nil {
		return func() tea.Msg { return messages.OpenCompleted{Err: ErrNoDispatchService} }
	}

	v.statusbar.SetState(status.StateOpening)
	ctx, dispatch, opts := v.ctx, v.services.Dispatch, v.settings.OpenOptions()
	set := v.state.Result.Set
	return func() tea.Msg {
		report, err := dispatch.OpenAll(ctx, set, opts)
		return messages.OpenCompleted{Report: report, Err: err}
	}
}

func (v *View) handleOpenCompleted(msg messages.OpenCompleted) {
	if msg.Report != nil {
		v.state = session.Update(v.state, session.Dispatched{Report: msg.Report})
	}
	v.syncStatus()

	switch {
	case msg.Err != nil && msg.Report == nil:
		v.statusbar.SetMessage("open failed: " + msg.Err.Error())
	case msg.Err != nil:
		v.statusbar.SetMessage(fmt.Sprintf("stopped after %d links", len(msg.Report.Opened)))
	case len(msg.Report.Failed) > 0:
		v.statusbar.SetMessage(fmt.Sprintf("opened %d of %d links, %d failed",
			len(msg.Report.Opened), msg.Report.Requested, len(msg.Report.Failed)))
	default:
		v.statusbar.SetMessage(fmt.Sprintf("opened %d links", len(msg.Report.Opened)))
	}
}

// openSelected opens the highlighted row's link.
func (v *View) openSelected() tea.Cmd {
	record := v.table.Selected()
	if record == nil {
		return nil
	}
	if v.services.Dispatch == nil {
		return func() tea.Msg { return messages.LinkOpened{Err: ErrNoDispatchService} }
	}

	link := record.Link(v.settings.Open.Target)
	ctx, dispatch := v.ctx, v.services.Dispatch
	return func() tea.Msg {
		return messages.LinkOpened{Link: link, Err: dispatch.Open(ctx, link)}
	}
}

// startWatch follows path when watching is enabled. A watch on another
// file is stopped first.
func (v *View) startWatch(path string) tea.Cmd {
	if !v.watch || v.services.Watch == nil || path == v.watchedPath {
		return nil
	}
	v.stopWatch()

	ctx, cancel := context.WithCancel(v.ctx)
	changes, err := v.services.Watch.Watch(ctx, path)
	if err != nil {
		cancel()
		v.statusbar.SetMessage("watch failed: " + err.Error())
		return nil
	}

	v.watchedPath = path
	v.watchCancel = cancel
	v.changes = changes
	v.statusbar.SetWatching(true)
	return waitForChange(changes, path)
}

// stopWatch stops the current watch, if any.
func (v *View) stopWatch() {
	if v.watchCancel != nil {
		v.watchCancel()
	}
	v.watchCancel = nil
	v.watchedPath = ""
	v.changes = nil
	v.statusbar.SetWatching(false)
}

// Close releases the file watch.
func (v *View) Close() {
	v.stopWatch()
}

// waitForChange blocks until the watched file changes or the watch ends.
func waitForChange(changes <-chan struct{}, path string) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return messages.WatchStopped{Path: path}
		}
		return messages.FileChanged{Path: path}
	}
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg { return messages.ViewChanged{View: view} }
}

// toggleFocus moves focus between the input and the table.
func (v *View) toggleFocus() {
	v.focusInput = !v.focusInput
	if v.focusInput {
		v.table.Blur()
		v.input.Focus()
	} else {
		v.input.Blur()
		v.table.Focus()
	}
}

// syncStatus mirrors the session status onto the status bar.
func (v *View) syncStatus() {
	v.statusbar.SetResultCount(v.state.Count())
	if v.loading {
		v.statusbar.SetState(status.StateLoading)
		return
	}
	switch v.state.Status() {
	case session.StatusError:
		v.statusbar.SetState(status.StateError)
	case session.StatusResults:
		v.statusbar.SetState(status.StateResults)
	case session.StatusEmpty:
		v.statusbar.SetState(status.StateEmpty)
	case session.StatusNoDocument, session.StatusLoaded:
		v.statusbar.SetState(status.StateReady)
	}
}

// View renders the exporter view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)

	sections = append(sections,
		v.styles.Title.Render("Discord Tenor GIF Exporter"),
		v.styles.Subtitle.Render("Load package/Account/user.json from your Discord data package to list and open your saved GIFs."),
		"",
		v.input.View(),
		v.renderFileLine(),
		"",
	)

	if banner := v.renderBanner(); banner != "" {
		sections = append(sections, banner, "")
	}

	if v.confirming {
		prompt := fmt.Sprintf("This will open %d new tabs. Continue? [y/N]", v.state.Count())
		sections = append(sections, v.styles.Warning.Render(prompt), "")
	}

	if v.state.Status() == session.StatusResults {
		if v.state.Count() > 0 {
			sections = append(sections, v.table.View())
		}
		if issues := v.state.Result.Issues; len(issues) > 0 {
			sections = append(sections, v.styles.Warning.Render(
				fmt.Sprintf("%d entries without a usable src link (policy %s)", len(issues), v.settings.Search.Policy)))
		}
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderFileLine shows which document is loaded.
func (v *View) renderFileLine() string {
	doc := v.state.Document
	if doc == nil {
		return v.styles.Muted.Render("No file loaded. Type a path and press enter, or press tab then p to pick one.")
	}
	return v.styles.Success.Render(fmt.Sprintf("✓ %s loaded successfully (%s)", doc.Name, humanize.Bytes(uint64(doc.Size))))
}

// renderBanner renders the count, empty or error banner.
func (v *View) renderBanner() string {
	banner := v.state.Banner()
	switch v.state.Status() {
	case session.StatusError:
		return v.styles.Error.Render("✗ " + banner)
	case session.StatusResults:
		return v.styles.Banner.Render(banner)
	case session.StatusEmpty:
		return v.styles.Muted.Render(banner)
	case session.StatusNoDocument, session.StatusLoaded:
	}
	return ""
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.table.SetDimensions(width, height-14) // header, input, banners, status
	v.statusbar.SetWidth(width)
}

// State returns the session state.
func (v *View) State() session.State {
	return v.state
}

// Path returns the typed path.
func (v *View) Path() string {
	return v.input.Value()
}

// Loading returns whether a load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Confirming returns whether the open-all prompt is shown.
func (v *View) Confirming() bool {
	return v.confirming
}

// InputFocused returns whether the path input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// WatchedPath returns the file being watched, if any.
func (v *View) WatchedPath() string {
	return v.watchedPath
}

// SelectedRecord returns the highlighted table row.
func (v *View) SelectedRecord() *domain.GifRecord {
	return v.table.Selected()
}

// StatusState returns the status bar state.
func (v *View) StatusState() status.State {
	return v.statusbar.State()
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Reset clears the session and the input.
func (v *View) Reset() {
	v.stopWatch()
	v.state = session.Update(v.state, session.Reset{})
	v.loadSeq++
	v.loading = false
	v.confirming = false
	v.input.Reset()
	v.table.SetRecords(nil)
	if !v.focusInput {
		v.toggleFocus()
	}
	v.statusbar.Clear()
}
