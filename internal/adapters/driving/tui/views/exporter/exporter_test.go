package exporter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/gifex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/gifex/internal/core/domain"
	"github.com/custodia-labs/gifex/internal/core/services"
	"github.com/custodia-labs/gifex/internal/core/session"
)

const (
	twoGifs = `{"settings": {"favoriteGifs": {"gifs": {
		"https://tenor.com/view/a": {"src": "https://media.tenor.com/a.gif"},
		"https://tenor.com/view/b": {"src": "https://media.tenor.com/b.gif"}
	}}}}`
	oneGif      = `{"favoriteGifs": {"gifs": {"https://tenor.com/view/c": {"src": "https://media.tenor.com/c.gif"}}}}`
	emptyGifs   = `{"favoriteGifs": {"gifs": {}}}`
	noFavorites = `{"id": "1", "username": "someone"}`
	withIssues  = `{"favoriteGifs": {"gifs": {"a": {"src": "x"}, "b": {"format": 1}}}}`
	invalid     = `{"favoriteGifs": `
)

// MockLoaderService implements driving.LoaderService for testing.
type MockLoaderService struct {
	LoadFunc     func(ctx context.Context, name string, r io.Reader) (*domain.Document, error)
	LoadFileFunc func(ctx context.Context, path string) (*domain.Document, error)
}

func (m *MockLoaderService) Load(ctx context.Context, name string, r io.Reader) (*domain.Document, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, name, r)
	}
	return services.NewLoaderService().Load(ctx, name, r)
}

func (m *MockLoaderService) LoadFile(ctx context.Context, path string) (*domain.Document, error) {
	if m.LoadFileFunc != nil {
		return m.LoadFileFunc(ctx, path)
	}
	return nil, os.ErrNotExist
}

// MockDispatchService implements driving.DispatchService for testing.
type MockDispatchService struct {
	OpenAllFunc func(ctx context.Context, set *domain.ResultSet, opts domain.OpenOptions) (*domain.DispatchReport, error)
	OpenFunc    func(ctx context.Context, link string) error
}

func (m *MockDispatchService) OpenAll(
	ctx context.Context,
	set *domain.ResultSet,
	opts domain.OpenOptions,
) (*domain.DispatchReport, error) {
	if m.OpenAllFunc != nil {
		return m.OpenAllFunc(ctx, set, opts)
	}
	report := &domain.DispatchReport{Requested: set.Len()}
	for _, r := range set.Records() {
		report.Opened = append(report.Opened, r.Link(opts.Target))
	}
	return report, nil
}

func (m *MockDispatchService) Open(ctx context.Context, link string) error {
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, link)
	}
	return nil
}

// MockWatchService implements driving.WatchService for testing.
type MockWatchService struct {
	WatchFunc func(ctx context.Context, path string) (<-chan struct{}, error)
}

func (m *MockWatchService) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	if m.WatchFunc != nil {
		return m.WatchFunc(ctx, path)
	}
	return make(chan struct{}), nil
}

// filesLoader serves the given path -> contents map through the real parser.
func filesLoader(files map[string]string) *MockLoaderService {
	m := &MockLoaderService{}
	m.LoadFileFunc = func(ctx context.Context, path string) (*domain.Document, error) {
		text, ok := files[path]
		if !ok {
			return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
		}
		doc, err := m.Load(ctx, filepath.Base(path), strings.NewReader(text))
		if err != nil {
			return nil, err
		}
		doc.Path = path
		return doc, nil
	}
	return m
}

func newTestView(files map[string]string) (*View, *MockDispatchService) {
	dispatch := &MockDispatchService{}
	view := NewView(nil, nil, Services{
		Loader:   filesLoader(files),
		Finder:   services.NewFinderService(),
		Dispatch: dispatch,
	})
	view.SetDimensions(120, 40)
	return view, dispatch
}

// execute runs cmd and any batched commands it returns.
func execute(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, execute(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// drive feeds the messages produced by cmd back into the view until
// nothing is left to do. Cursor blink messages are dropped so the loop ends.
func drive(v *View, cmd tea.Cmd) {
	queue := execute(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		switch msg.(type) {
		case messages.FileLoaded, messages.SearchCompleted, messages.OpenCompleted,
			messages.LinkOpened, messages.ErrorOccurred, messages.FileSelected:
		default:
			continue
		}
		_, next := v.Update(msg)
		queue = append(queue, execute(next)...)
	}
}

func press(v *View, msg tea.KeyMsg) {
	_, cmd := v.Update(msg)
	drive(v, cmd)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loadPath types path and presses enter.
func loadPath(v *View, path string) {
	v.SetPath(path)
	press(v, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles(), keymap.DefaultKeyMap(), Services{})

	require.NotNil(t, view)
	assert.False(t, view.Ready())
	assert.True(t, view.InputFocused())
	assert.Equal(t, session.StatusNoDocument, view.State().Status())
	assert.Equal(t, status.StateReady, view.StatusState())
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil, nil, Services{})

	assert.NotNil(t, view.styles)
	assert.NotNil(t, view.keymap)
}

func TestView_WithContext(t *testing.T) {
	view := NewView(nil, nil, Services{})
	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	result := view.WithContext(ctx)

	assert.Equal(t, view, result)
	assert.Equal(t, ctx, view.ctx)
}

func TestView_View_NotReady(t *testing.T) {
	view := NewView(nil, nil, Services{})

	assert.Equal(t, "Initialising...", view.View())
}

func TestView_View_Initial(t *testing.T) {
	view, _ := newTestView(nil)

	out := view.View()

	assert.Contains(t, out, "Discord Tenor GIF Exporter")
	assert.Contains(t, out, "No file loaded")
	assert.NotContains(t, out, "Found")
}

func TestView_Init_LoadsPresetPath(t *testing.T) {
	view, _ := newTestView(map[string]string{"user.json": twoGifs})
	view.SetPath("user.json")

	drive(view, view.Init())

	assert.Equal(t, session.StatusResults, view.State().Status())
	assert.Equal(t, 2, view.State().Count())
}

func TestView_LoadAndFind(t *testing.T) {
	view, _ := newTestView(map[string]string{"user.json": twoGifs})

	loadPath(view, "user.json")

	state := view.State()
	require.NotNil(t, state.Document)
	assert.Equal(t, "user.json", state.Document.Name)
	assert.Equal(t, session.StatusResults, state.Status())
	assert.Equal(t, status.StateResults, view.StatusState())
	assert.False(t, view.Loading())
	assert.False(t, view.InputFocused(), "focus moves to the table")

	selected := view.SelectedRecord()
	require.NotNil(t, selected)
	assert.Equal(t, "https://tenor.com/view/a", selected.ID)

	out := view.View()
	assert.Contains(t, out, "user.json loaded successfully")
	assert.Contains(t, out, "Found 2 GIFs")
	assert.Contains(t, out, "https://media.tenor.com/b.gif")
}

func TestView_InvalidJSON(t *testing.T) {
	view, _ := newTestView(map[string]string{"bad.json": invalid})

	loadPath(view, "bad.json")

	assert.Equal(t, session.StatusError, view.State().Status())
	assert.Nil(t, view.State().Document)
	assert.Equal(t, status.StateError, view.StatusState())
	assert.Contains(t, view.View(), "Invalid JSON file!")
}

func TestView_InvalidJSON_KeepsPreviousDocument(t *testing.T) {
	view, _ := newTestView(map[string]string{"user.json": twoGifs, "bad.json": invalid})
	loadPath(view, "user.json")
	before := view.State().Document
	view.toggleFocus()

	loadPath(view, "bad.json")

	state := view.State()
	assert.Equal(t, before, state.Document)
	assert.Equal(t, session.StatusError, state.Status())
	assert.Contains(t, view.View(), "Invalid JSON file!")
}

func TestView_NoFileLoaded(t *testing.T) {
	view, _ := newTestView(nil)

	press(view, tea.KeyMsg{Type: tea.KeyEnter})

	assert.ErrorIs(t, view.State().Err, domain.ErrNoDocument)
	assert.Contains(t, view.View(), "Please upload a JSON file first!")
}

func TestView_KeyNotFound(t *testing.T) {
	view, _ := newTestView(map[string]string{"user.json": noFavorites})

	loadPath(view, "user.json")

	assert.ErrorIs(t, view.State().Err, domain.ErrNotFound)
	assert.Contains(t, view.View(), `Key "favoriteGifs" not found or does not contain a list/array in the JSON file.`)
}

func TestView_EmptyList(t *testing.T) {
	view, _ := newTestView(map[string]string{"user.json": emptyGifs})

	loadPath(view, "user.json")

	assert.Equal(t, session.StatusEmpty, view.State().Status())
	assert.Equal(t, status.StateEmpty, view.StatusState())
	assert.True(t, view.InputFocused())
	assert.Contains(t, view.View(), `The list "gifs" is empty.`)
}

func TestView_MissingFile(t *testing.T) {
	view, _ := newTestView(nil)

	loadPath(view, "missing.json")

	assert.ErrorIs(t, view.State().Err, os.ErrNotExist)
	assert.Equal(t, status.StateError, view.StatusState())
}

func TestView_IssuesShown(t *testing.T) {
	view, _ := newTestView(map[string]string{"user.json": withIssues})

	loadPath(view, "user.json")

	assert.Equal(t, 1, view.State().Count())
	assert.Contains(t, view.View(), "1 entries without a usable src link (policy skip)")
}

func TestView_AllEntriesSkipped(t *testing.T) {
	view, _ := newTestView(map[string]string{
		"user.json": `{"favoriteGifs": {"gifs": {"a": {"nosrc": 1}, "b": {"src": 5}}}}`,
	})

	loadPath(view, "user.json")

	assert.Equal(t, session.StatusResults, view.State().Status())
	assert.Zero(t, view.State().Count())
	assert.True(t, view.InputFocused())
	out := view.View()
	assert.Contains(t, out, "Found 0 GIFs")
	assert.Contains(t, out, "2 entries without a usable src link (policy skip)")
	assert.NotContains(t, out, "is empty")
	assert.Nil(t, view.OpenAll())
}

func TestView_EnterOnLoadedPath_SearchesAgain(t *testing.T) {
	files := map[string]string{"user.json": twoGifs}
	view, _ := newTestView(files)
	loader := view.services.Loader.(*MockLoaderService)
	loads := 0
	inner := loader.LoadFileFunc
	loader.LoadFileFunc = func(ctx context.Context, path string) (*domain.Document, error) {
		loads++
		return inner(ctx, path)
	}
	loadPath(view, "user.json")
	id := view.State().Document.ID
	view.toggleFocus()

	press(view, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 1, loads)
	assert.Equal(t, id, view.State().Document.ID)
	assert.Equal(t, session.StatusResults, view.State().Status())
}

func TestView_StaleLoadIgnored(t *testing.T) {
	view, _ := newTestView(map[string]string{"old.json": twoGifs, "new.json": oneGif})

	first := view.Load("old.json")
	second := view.Load("new.json")
	newMsg := second()
	oldMsg := first()

	_, cmd := view.Update(newMsg)
	drive(view, cmd)
	_, cmd = view.Update(oldMsg)
	drive(view, cmd)

	state := view.State()
	require.NotNil(t, state.Document)
	assert.Equal(t, "new.json", state.Document.Name)
	assert.Equal(t, 1, state.Count())
}

func TestView_StaleSearchIgnored(t *testing.T) {
	view, _ := newTestView(map[string]string{"user.json": twoGifs})
	loadPath(view, "user.json")

	other := &domain.Result{Set: domain.NewResultSet(nil)}
	_, cmd := view.Update(messages.SearchCompleted{DocumentID: "another-load", Result: other})

	assert.Nil(t, cmd)
	assert.Equal(t, 2, view.State().Count())
}

func TestView_FileSelected(t *testing.T) {
	view, _ := newTestView(map[string]string{"/tmp/user.json": oneGif})

	_, cmd := view.Update(messages.FileSelected{Path: "/tmp/user.json"})
	drive(view, cmd)

	assert.Equal(t, "/tmp/user.json", view.Path())
	assert.Equal(t, 1, view.State().Count())
}

func TestView_CustomSettings(t *testing.T) {
	doc := `{"saved": {"items": {"a": {"src": "x"}, "b": {}}}}`
	view, _ := newTestView(map[string]string{"user.json": doc})
	settings := domain.DefaultAppSettings()
	settings.Search.Path = domain.KeyPath{Container: "saved", List: "items"}
	settings.Search.Policy = domain.PolicyKeep
	view.SetSettings(settings)

	loadPath(view, "user.json")

	assert.Equal(t, 2, view.State().Count())
	assert.Contains(t, view.View(), "(no src)")
}

func TestView_OpenAll_Confirmed(t *testing.T) {
	view, dispatch := newTestView(map[string]string{"user.json": twoGifs})
	var got *domain.ResultSet
	var gotOpts domain.OpenOptions
	dispatch.OpenAllFunc = func(_ context.Context, set *domain.ResultSet, opts domain.OpenOptions) (*domain.DispatchReport, error) {
		got, gotOpts = set, opts
		return &domain.DispatchReport{Requested: 2, Opened: []string{"a", "b"}}, nil
	}
	loadPath(view, "user.json")

	press(view, tea.KeyMsg{Type: tea.KeyCtrlO})
	require.True(t, view.Confirming())
	assert.Equal(t, status.StateConfirm, view.StatusState())
	assert.Contains(t, view.View(), "This will open 2 new tabs. Continue? [y/N]")

	press(view, runes("y"))

	assert.False(t, view.Confirming())
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Len())
	assert.Equal(t, domain.DefaultAppSettings().OpenOptions(), gotOpts)
	assert.NotNil(t, view.State().LastDispatch)
	assert.Equal(t, "opened 2 links", view.StatusMessage())
}

func TestView_OpenAll_Cancelled(t *testing.T) {
	view, dispatch := newTestView(map[string]string{"user.json": twoGifs})
	called := false
	dispatch.OpenAllFunc = func(context.Context, *domain.ResultSet, domain.OpenOptions) (*domain.DispatchReport, error) {
		called = true
		return &domain.DispatchReport{}, nil
	}
	loadPath(view, "user.json")

	press(view, tea.KeyMsg{Type: tea.KeyCtrlO})
	press(view, runes("n"))

	assert.False(t, called)
	assert.False(t, view.Confirming())
	assert.Equal(t, "cancelled", view.StatusMessage())
	assert.Equal(t, status.StateResults, view.StatusState())
}

func TestView_OpenAll_ReportsFailures(t *testing.T) {
	view, dispatch := newTestView(map[string]string{"user.json": twoGifs})
	dispatch.OpenAllFunc = func(context.Context, *domain.ResultSet, domain.OpenOptions) (*domain.DispatchReport, error) {
		return &domain.DispatchReport{
			Requested: 2,
			Opened:    []string{"a"},
			Failed:    []domain.LinkFailure{{ID: "b", Link: "b", Reason: "boom"}},
		}, nil
	}
	loadPath(view, "user.json")

	press(view, tea.KeyMsg{Type: tea.KeyCtrlO})
	press(view, runes("y"))

	assert.Equal(t, "opened 1 of 2 links, 1 failed", view.StatusMessage())
}

func TestView_OpenAll_NothingToOpen(t *testing.T) {
	view, _ := newTestView(map[string]string{"user.json": emptyGifs})
	loadPath(view, "user.json")

	press(view, tea.KeyMsg{Type: tea.KeyCtrlO})

	assert.False(t, view.Confirming())
}

func TestView_OpenSelected(t *testing.T) {
	view, dispatch := newTestView(map[string]string{"user.json": twoGifs})
	var mu sync.Mutex
	var opened []string
	dispatch.OpenFunc = func(_ context.Context, link string) error {
		mu.Lock()
		defer mu.Unlock()
		opened = append(opened, link)
		return nil
	}
	loadPath(view, "user.json")
	require.False(t, view.InputFocused())

	press(view, runes("o"))

	assert.Equal(t, []string{"https://media.tenor.com/a.gif"}, opened)
	assert.Equal(t, "opened https://media.tenor.com/a.gif", view.StatusMessage())
}

func TestView_OpenSelected_TargetID(t *testing.T) {
	view, dispatch := newTestView(map[string]string{"user.json": twoGifs})
	settings := domain.DefaultAppSettings()
	settings.Open.Target = domain.OpenTargetID
	view.SetSettings(settings)
	var opened string
	dispatch.OpenFunc = func(_ context.Context, link string) error {
		opened = link
		return nil
	}
	loadPath(view, "user.json")

	press(view, tea.KeyMsg{Type: tea.KeyDown})
	press(view, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "https://tenor.com/view/b", opened)
}

func TestView_OpenSelected_Error(t *testing.T) {
	view, dispatch := newTestView(map[string]string{"user.json": twoGifs})
	dispatch.OpenFunc = func(context.Context, string) error {
		return fmt.Errorf("no browser")
	}
	loadPath(view, "user.json")

	press(view, runes("o"))

	assert.Equal(t, "open failed: no browser", view.StatusMessage())
}

func TestView_TableKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want tea.Msg
	}{
		{"picker", runes("p"), messages.ViewChanged{View: messages.ViewPicker}},
		{"help", runes("?"), messages.ViewChanged{View: messages.ViewHelp}},
		{"quit", runes("q"), messages.Quit{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, _ := newTestView(nil)
			view.toggleFocus()

			_, cmd := view.Update(tt.key)

			require.NotNil(t, cmd)
			assert.Equal(t, tt.want, cmd())
		})
	}
}

func TestView_InputKeysAreTyped(t *testing.T) {
	view, _ := newTestView(nil)

	_, _ = view.Update(runes("q"))
	_, _ = view.Update(runes("p"))

	assert.Equal(t, "qp", view.Path())
	assert.True(t, view.InputFocused())
}

func TestView_FocusToggle(t *testing.T) {
	view, _ := newTestView(nil)

	_, _ = view.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, view.InputFocused())

	_, _ = view.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, view.InputFocused())
}

func TestView_FindKey(t *testing.T) {
	view, _ := newTestView(map[string]string{"user.json": twoGifs})
	loadPath(view, "user.json")
	id := view.State().Document.ID

	press(view, runes("f"))

	assert.Equal(t, id, view.State().Document.ID)
	assert.Equal(t, 2, view.State().Count())
}

func TestView_ErrorOccurred(t *testing.T) {
	view, _ := newTestView(nil)

	_, cmd := view.Update(messages.ErrorOccurred{Err: fmt.Errorf("something went wrong")})

	assert.Nil(t, cmd)
	assert.Equal(t, session.StatusError, view.State().Status())
	assert.Contains(t, view.View(), "something went wrong")
}

func TestView_NoLoaderService(t *testing.T) {
	view := NewView(nil, nil, Services{})
	view.SetDimensions(80, 24)

	drive(view, view.Load("user.json"))

	assert.ErrorIs(t, view.State().Err, ErrNoLoaderService)
}

func TestView_NoDispatchService(t *testing.T) {
	view := NewView(nil, nil, Services{
		Loader: filesLoader(map[string]string{"user.json": twoGifs}),
		Finder: services.NewFinderService(),
	})
	view.SetDimensions(80, 24)
	loadPath(view, "user.json")

	press(view, tea.KeyMsg{Type: tea.KeyCtrlO})
	press(view, runes("y"))

	assert.Contains(t, view.StatusMessage(), ErrNoDispatchService.Error())
}

func TestView_Watch(t *testing.T) {
	changes := make(chan struct{}, 1)
	var watchCtx context.Context
	watch := &MockWatchService{
		WatchFunc: func(ctx context.Context, path string) (<-chan struct{}, error) {
			watchCtx = ctx
			assert.Equal(t, "user.json", path)
			return changes, nil
		},
	}
	view := NewView(nil, nil, Services{
		Loader:   filesLoader(map[string]string{"user.json": twoGifs}),
		Finder:   services.NewFinderService(),
		Dispatch: &MockDispatchService{},
		Watch:    watch,
	})
	view.SetDimensions(80, 24)
	view.SetWatch(true)

	// Apply the load by hand; the returned batch blocks on changes.
	_, _ = view.Update(view.Load("user.json")())

	assert.Equal(t, "user.json", view.WatchedPath())
	require.NotNil(t, watchCtx)

	_, cmd := view.Update(messages.FileChanged{Path: "user.json"})
	assert.NotNil(t, cmd)
	assert.True(t, view.Loading())

	_, _ = view.Update(messages.FileChanged{Path: "other.json"})

	view.Close()
	assert.Empty(t, view.WatchedPath())
	assert.Error(t, watchCtx.Err())
}

func TestView_WatchStopped(t *testing.T) {
	watch := &MockWatchService{}
	view := NewView(nil, nil, Services{
		Loader: filesLoader(map[string]string{"user.json": emptyGifs}),
		Finder: services.NewFinderService(),
		Watch:  watch,
	})
	view.SetWatch(true)
	_, _ = view.Update(view.Load("user.json")())
	require.Equal(t, "user.json", view.WatchedPath())

	_, cmd := view.Update(messages.WatchStopped{Path: "user.json"})

	assert.Nil(t, cmd)
	assert.Empty(t, view.WatchedPath())
}

func TestView_WatchFailure(t *testing.T) {
	watch := &MockWatchService{
		WatchFunc: func(context.Context, string) (<-chan struct{}, error) {
			return nil, fmt.Errorf("too many files")
		},
	}
	view := NewView(nil, nil, Services{
		Loader: filesLoader(map[string]string{"user.json": emptyGifs}),
		Finder: services.NewFinderService(),
		Watch:  watch,
	})
	view.SetWatch(true)

	_, _ = view.Update(view.Load("user.json")())

	assert.Empty(t, view.WatchedPath())
	assert.Equal(t, "watch failed: too many files", view.StatusMessage())
}

func TestView_WaitForChange(t *testing.T) {
	changes := make(chan struct{}, 1)
	changes <- struct{}{}

	assert.Equal(t, messages.FileChanged{Path: "a.json"}, waitForChange(changes, "a.json")())

	close(changes)
	assert.Equal(t, messages.WatchStopped{Path: "a.json"}, waitForChange(changes, "a.json")())
}

func TestView_Reset(t *testing.T) {
	view, _ := newTestView(map[string]string{"user.json": twoGifs})
	loadPath(view, "user.json")

	view.Reset()

	assert.Equal(t, session.StatusNoDocument, view.State().Status())
	assert.Empty(t, view.Path())
	assert.True(t, view.InputFocused())
	assert.Equal(t, status.StateReady, view.StatusState())
}
