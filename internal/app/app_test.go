package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/folio/internal/app/popupctl"
	"github.com/llehouerou/folio/internal/config"
	"github.com/llehouerou/folio/internal/importer"
	"github.com/llehouerou/folio/internal/photo"
	"github.com/llehouerou/folio/internal/state"
	"github.com/llehouerou/folio/internal/ui/gallery"
	"github.com/llehouerou/folio/internal/ui/headerbar"
)

// cmdTimeout bounds each command. Timers longer than this (spinner frames,
// cursor blink, status expiry) are dropped.
const cmdTimeout = 50 * time.Millisecond

type fakeStore struct {
	mu    sync.Mutex
	items []photo.Item
}

func (s *fakeStore) Items(context.Context) ([]photo.Item, error) {
	return s.ListAll(context.Background())
}

func (s *fakeStore) Changes() <-chan struct{} { return nil }

func (s *fakeStore) ListAll(context.Context) ([]photo.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items), nil
}

func (s *fakeStore) edit(id string, fn func(*photo.Item)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			fn(&s.items[i])
			return nil
		}
	}
	return errors.New("photo not found")
}

func (s *fakeStore) UpdateDetails(_ context.Context, id, title, description string) error {
	return s.edit(id, func(it *photo.Item) { it.Title, it.Description = title, description })
}

func (s *fakeStore) SetHidden(_ context.Context, id string, hidden bool) error {
	return s.edit(id, func(it *photo.Item) { it.Hidden = hidden })
}

func (s *fakeStore) SetFeatured(_ context.Context, id string, featured bool) error {
	return s.edit(id, func(it *photo.Item) { it.Featured = featured })
}

func (s *fakeStore) SetCategory(_ context.Context, id, category string) error {
	return s.edit(id, func(it *photo.Item) { it.Category = category })
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = slices.DeleteFunc(s.items, func(it photo.Item) bool { return it.ID == id })
	return nil
}

func (s *fakeStore) get(id string) (photo.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := photo.IndexOf(s.items, id)
	if i < 0 {
		return photo.Item{}, false
	}
	return s.items[i], true
}

type fakeImporter struct {
	dirs []string
}

func (f *fakeImporter) Import(_ context.Context, dirs []string, progress chan<- importer.Progress) (importer.Result, error) {
	f.dirs = append(f.dirs, dirs...)
	close(progress)
	return importer.Result{Added: []photo.Item{{ID: "new"}}, Bytes: 2048}, nil
}

type fakeWatcher struct {
	events chan importer.WatchEvent
}

func (w *fakeWatcher) Events() <-chan importer.WatchEvent { return w.events }

func catalogue() []photo.Item {
	return []photo.Item{
		{ID: "a", Title: "Alpha", Category: "Portrait", Path: "/nonexistent/a.jpg", Width: 400, Height: 600},
		{ID: "b", Title: "Bravo", Category: "Street", Path: "/nonexistent/b.jpg", Width: 600, Height: 400},
		{ID: "c", Title: "Charlie", Category: "Landscape", Path: "/nonexistent/c.jpg", Width: 500, Height: 500},
		{ID: "d", Title: "Delta", Category: "Street", Hidden: true},
	}
}

type harness struct {
	t     *testing.T
	m     Model
	store *fakeStore
	state *state.Mock
	quit  bool
}

func newHarness(t *testing.T, saved *state.UIState, modify func(*Deps)) *harness {
	t.Helper()
	off := false
	cfg := &config.Config{
		Library: config.LibraryConfig{Paths: []string{"/photos"}},
		Gallery: config.GalleryConfig{
			RevealDelayMS: 1,
			ThrottleMS:    1,
			CellWidth:     8,
			CellHeight:    16,
		},
		Slideshow: config.SlideshowConfig{Enabled: &off},
	}
	st := state.NewMock()
	st.SetUI(saved)
	store := &fakeStore{items: catalogue()}
	deps := Deps{
		Config:   cfg,
		Source:   store,
		Repo:     store,
		Importer: &fakeImporter{},
		State:    st,
	}
	if modify != nil {
		modify(&deps)
	}

	h := &harness{t: t, m: New(deps), store: store, state: st}
	h.run(h.m.Init())
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	return h
}

// send feeds msg to the model and runs every resulting command.
func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	queue := []tea.Msg{msg}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(h.t, steps, 1000, "message loop does not settle")
		next := queue[0]
		queue = queue[1:]
		switch next := next.(type) {
		case tea.BatchMsg:
			for _, c := range next {
				queue = append(queue, exec(c)...)
			}
			continue
		case tea.QuitMsg:
			h.quit = true
			continue
		}
		updated, cmd := h.m.Update(next)
		h.m = updated.(Model)
		queue = append(queue, exec(cmd)...)
	}
}

func (h *harness) run(cmd tea.Cmd) {
	h.t.Helper()
	for _, msg := range exec(cmd) {
		h.send(msg)
	}
}

func (h *harness) key(keys ...string) {
	h.t.Helper()
	for _, k := range keys {
		h.send(keyMsg(k))
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "f1":
		return tea.KeyMsg{Type: tea.KeyF1}
	case "f2":
		return tea.KeyMsg{Type: tea.KeyF2}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func exec(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(cmdTimeout):
		return nil
	}
}

func (h *harness) view() string {
	return ansi.Strip(h.m.View())
}

func TestStartsInGallery(t *testing.T) {
	h := newHarness(t, nil, nil)

	assert.Equal(t, state.ViewGallery, h.m.ActiveView())
	assert.Len(t, h.m.Gallery.Items(), 3, "hidden photo is not shown")

	v := h.view()
	assert.Contains(t, v, "Gallery")
	assert.Contains(t, v, "3 photos")
	assert.Len(t, strings.Split(h.m.View(), "\n"), 30)
}

func TestRestoresSavedState(t *testing.T) {
	h := newHarness(t, &state.UIState{Category: "Street", View: state.ViewGallery}, nil)

	assert.Equal(t, "Street", h.m.Gallery.Category())
	assert.Equal(t, []photo.Item{catalogue()[1]}, h.m.Gallery.Items())
	assert.Equal(t, 0, h.state.Saves(), "restoring writes nothing")
}

func TestRestoresLastPhoto(t *testing.T) {
	h := newHarness(t, &state.UIState{Category: photo.CategoryAll, LastPhotoID: "c"}, nil)
	assert.Equal(t, "c", h.m.Gallery.Selected())

	h.key("enter")
	cur, ok := h.m.Lightbox.Current()
	require.True(t, ok)
	assert.Equal(t, "c", cur.ID)
}

func TestRestoresDashboard(t *testing.T) {
	h := newHarness(t, &state.UIState{View: state.ViewDashboard}, nil)
	assert.Equal(t, state.ViewDashboard, h.m.ActiveView())
	assert.Contains(t, h.view(), "Catalogue")
}

func TestStartViewOverridesSavedView(t *testing.T) {
	h := newHarness(t, &state.UIState{View: state.ViewGallery}, func(d *Deps) {
		d.View = state.ViewDashboard
	})
	assert.Equal(t, state.ViewDashboard, h.m.ActiveView())
}

func TestSwitchViewsAndPersist(t *testing.T) {
	h := newHarness(t, nil, nil)

	h.key("f2")
	assert.Equal(t, state.ViewDashboard, h.m.ActiveView())
	saved, _ := h.state.GetUI()
	require.NotNil(t, saved)
	assert.Equal(t, state.ViewDashboard, saved.View)

	// Click the gallery tab in the header.
	x := -1
	for i := range 80 {
		if v, ok := headerbar.TabAt(i); ok && v == headerbar.ViewGallery {
			x = i
			break
		}
	}
	require.GreaterOrEqual(t, x, 0)
	h.send(tea.MouseMsg{X: x, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, state.ViewGallery, h.m.ActiveView())
}

func TestOpenLightboxAndClose(t *testing.T) {
	h := newHarness(t, nil, nil)
	first := h.m.Gallery.Selected()
	require.NotEmpty(t, first)

	h.key("enter")
	require.True(t, h.m.Lightbox.IsOpen())
	cur, _ := h.m.Lightbox.Current()
	assert.Equal(t, first, cur.ID)
	assert.True(t, h.m.lock.locked, "page behind the lightbox is locked")

	h.key("l")
	next, _ := h.m.Lightbox.Current()
	assert.NotEqual(t, first, next.ID)

	h.key("esc")
	assert.False(t, h.m.Lightbox.IsOpen())
	assert.False(t, h.m.lock.locked)
	assert.Equal(t, next.ID, h.m.Gallery.Selected(), "gallery follows the lightbox")

	saved, _ := h.state.GetUI()
	require.NotNil(t, saved)
	assert.Equal(t, next.ID, saved.LastPhotoID)
}

func TestSwitchingViewClosesLightbox(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.key("enter")
	require.True(t, h.m.Lightbox.IsOpen())

	h.key("f2")
	assert.False(t, h.m.Lightbox.IsOpen())
	assert.Equal(t, state.ViewDashboard, h.m.ActiveView())
}

func TestEditTitleFlow(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.key("f2", "e")
	require.Equal(t, popupctl.TextInput, h.m.Popups.ActivePopup())
	assert.Equal(t, popupctl.InputTitle, h.m.Popups.InputMode())

	h.key(" ", "2", "enter")
	assert.Equal(t, popupctl.None, h.m.Popups.ActivePopup())

	it, ok := h.store.get("a")
	require.True(t, ok)
	assert.Equal(t, "Alpha 2", it.Title)
	status, failed := h.m.Dashboard.Status()
	assert.False(t, failed)
	assert.Equal(t, "Renamed to Alpha 2", status)
}

func TestEditCanceled(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.key("f2", "E", "x", "esc")

	assert.Equal(t, popupctl.None, h.m.Popups.ActivePopup())
	it, _ := h.store.get("a")
	assert.Empty(t, it.Description)
}

func TestKeysGoToFocusedInput(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.key("f2", "e", "q", "?")

	assert.False(t, h.quit)
	assert.Equal(t, popupctl.TextInput, h.m.Popups.ActivePopup())
	assert.True(t, h.m.Popups.InputFocused())
	assert.Contains(t, ansi.Strip(h.m.Popups.Get(popupctl.TextInput).View()), "Alphaq?")

	h.key("ctrl+c")
	assert.True(t, h.quit, "ctrl+c quits from a popup")
}

func TestDeleteFlow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg"), 0o600))

	h := newHarness(t, nil, nil)
	require.NoError(t, h.store.edit("a", func(it *photo.Item) { it.Path = path }))

	h.key("f2", "r", "d")
	require.Equal(t, popupctl.Confirm, h.m.Popups.ActivePopup())
	h.key("down", "enter")

	_, ok := h.store.get("a")
	assert.False(t, ok)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "file is deleted with the photo")
}

func TestDeleteCanceled(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.key("f2", "d", "esc")

	_, ok := h.store.get("a")
	assert.True(t, ok)
	assert.Equal(t, popupctl.None, h.m.Popups.ActivePopup())
}

func TestImportFlow(t *testing.T) {
	imp := &fakeImporter{}
	h := newHarness(t, nil, func(d *Deps) { d.Importer = imp })

	h.key("f2", "i")
	require.Equal(t, popupctl.TextInput, h.m.Popups.ActivePopup())
	assert.Equal(t, popupctl.InputImportDir, h.m.Popups.InputMode())
	h.key("enter")

	assert.Equal(t, []string{"/photos"}, imp.dirs)
	status, _ := h.m.Dashboard.Status()
	assert.Contains(t, status, "Imported 1 photo")
}

func TestImportExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, "Pictures"), expandDir(" ~/Pictures "))
	assert.Equal(t, "/srv/photos", expandDir("/srv/photos"))
}

func TestHelpPopup(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.key("?")
	require.Equal(t, popupctl.Help, h.m.Popups.ActivePopup())
	assert.Contains(t, h.view(), "Gallery")

	h.key("esc")
	assert.Equal(t, popupctl.None, h.m.Popups.ActivePopup())
	assert.False(t, h.quit)
}

func TestWatcherEventsReachStatus(t *testing.T) {
	w := &fakeWatcher{events: make(chan importer.WatchEvent, 2)}
	w.events <- importer.WatchEvent{Result: importer.Result{Added: []photo.Item{{ID: "x"}}}, Removed: 2}
	h := newHarness(t, nil, func(d *Deps) { d.Watcher = w })

	status, failed := h.m.Status()
	assert.False(t, failed)
	assert.Contains(t, status, "Imported 1 photo")
	assert.Contains(t, status, "2 removed")
	assert.Contains(t, h.view(), "Imported 1 photo")

	h.send(WatchEventMsg{Event: importer.WatchEvent{Err: errors.New("too many open files")}})
	status, failed = h.m.Status()
	assert.True(t, failed)
	assert.Contains(t, status, "too many open files")
	close(w.events)
}

func TestStatusExpires(t *testing.T) {
	h := newHarness(t, nil, nil)
	cmd := h.m.setStatus("hello", false)
	require.NotNil(t, cmd)
	gen := h.m.statusGen

	h.send(clearStatusMsg{gen: gen - 1})
	status, _ := h.m.Status()
	assert.Equal(t, "hello", status, "stale expiry is ignored")

	h.send(clearStatusMsg{gen: gen})
	status, _ = h.m.Status()
	assert.Empty(t, status)
}

func TestWatchSummary(t *testing.T) {
	assert.Equal(t, "Removed 3 missing photo(s)", watchSummary(importer.WatchEvent{Removed: 3}))
	assert.Equal(t, "No photos found", watchSummary(importer.WatchEvent{}))
}

func TestQuitSavesState(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.key("tab", "q")

	assert.True(t, h.quit)
	saved, _ := h.state.GetUI()
	require.NotNil(t, saved)
	assert.Equal(t, "Portrait", saved.Category)
	assert.Equal(t, state.ViewGallery, saved.View)
}

func TestOpenErrorShowsPopup(t *testing.T) {
	h := newHarness(t, nil, func(d *Deps) {
		d.Config.Viewer.StrictStart = true
	})
	h.send(gallery.OpenMsg{Items: photo.Visible(catalogue()), ID: "missing"})
	assert.False(t, h.m.Lightbox.IsOpen())
	assert.Equal(t, popupctl.Error, h.m.Popups.ActivePopup())
	assert.Contains(t, h.m.Popups.ErrorMsg(), "open photo")

	h.key("x")
	assert.Equal(t, popupctl.None, h.m.Popups.ActivePopup(), "any key dismisses the error")
}

func TestEnforceHeight(t *testing.T) {
	assert.Equal(t, "a\nb\n", enforceHeight("a\nb", 3))
	assert.Equal(t, "a\nb", enforceHeight("a\nb\nc", 2))
	assert.Empty(t, enforceHeight("a", 0))
}
