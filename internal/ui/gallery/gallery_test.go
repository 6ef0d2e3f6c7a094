package gallery

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/folio/internal/config"
	"github.com/llehouerou/folio/internal/keymap"
	"github.com/llehouerou/folio/internal/photo"
	"github.com/llehouerou/folio/internal/thumbs"
)

type fakeSource struct {
	items   []photo.Item
	err     error
	changes chan struct{}
}

func (f *fakeSource) Items(context.Context) ([]photo.Item, error) {
	return f.items, f.err
}

func (f *fakeSource) Changes() <-chan struct{} {
	return f.changes
}

var categories = []string{"Portrait", "Landscape", "Street", "Travel"}

func fixture(n int) []photo.Item {
	out := make([]photo.Item, n)
	for i := range out {
		out[i] = photo.Item{
			ID:       fmt.Sprintf("p%02d", i+1),
			Title:    fmt.Sprintf("Photo %d", i+1),
			Category: categories[i%len(categories)],
			Path:     fmt.Sprintf("/nonexistent/p%02d.jpg", i+1),
		}
	}
	return out
}

// newModel returns a gallery over items, sized width x height. The clock
// advances one second per reading so every scroll sample is evaluated.
func newModel(t *testing.T, items []photo.Item, width, height int, loader *thumbs.Loader) (*Model, tea.Cmd) {
	t.Helper()
	clock := time.Unix(0, 0)
	cfg := (&config.Config{Gallery: config.GalleryConfig{RevealDelayMS: 1}}).GetGalleryConfig()
	m := New(&fakeSource{items: items}, loader, Options{
		Config:     cfg,
		CellWidth:  8,
		CellHeight: 16,
		Now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	})
	m.Update(ItemsMsg{Items: items})
	cmd := m.Resize(width, height)
	return &m, cmd
}

// collect runs cmd and every command of nested batches, returning the
// messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func findReveal(msgs []tea.Msg) (revealMsg, bool) {
	for _, msg := range msgs {
		if r, ok := msg.(revealMsg); ok {
			return r, true
		}
	}
	return revealMsg{}, false
}

func ids(items []photo.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestFirstPageFitsWithoutReveal(t *testing.T) {
	m, cmd := newModel(t, fixture(20), 100, 20, nil)

	assert.Equal(t, 2, m.grid.ColumnCount())
	assert.Len(t, m.Visible(), 6)
	assert.False(t, m.Loading())
	_, ok := findReveal(collect(cmd))
	assert.False(t, ok)
	assert.Equal(t, "p01", m.Selected())
}

func TestScrollToEndRevealsNextPage(t *testing.T) {
	m, _ := newModel(t, fixture(20), 100, 20, nil)

	cmd := m.HandleAction(keymap.ActionJumpEnd, "G")
	require.True(t, m.Loading())
	assert.Equal(t, "p06", m.Selected())
	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Contains(t, ansi.Strip(m.View()), "loading more photos")

	reveal, ok := findReveal(collect(cmd))
	require.True(t, ok)
	m.Update(reveal)

	assert.Len(t, m.Visible(), 12)
	assert.Equal(t, 12, m.grid.Len())
	assert.False(t, m.Loading())
}

func TestShortContentRevealsUntilFilled(t *testing.T) {
	m, cmd := newModel(t, fixture(20), 100, 200, nil)

	for range 10 {
		if !m.Loading() {
			break
		}
		reveal, ok := findReveal(collect(cmd))
		require.True(t, ok)
		cmd = m.Update(reveal)
	}

	assert.Len(t, m.Visible(), 20)
	assert.True(t, m.pager.Exhausted())
	assert.Contains(t, ansi.Strip(m.View()), "end of portfolio")
}

func TestStaleRevealIsDiscarded(t *testing.T) {
	m, _ := newModel(t, fixture(20), 100, 20, nil)

	reveal, ok := findReveal(collect(m.HandleAction(keymap.ActionJumpEnd, "G")))
	require.True(t, ok)

	m.HandleAction(keymap.ActionPickCategory, "1")
	m.HandleAction(keymap.ActionNextCategory, "tab")
	m.Update(reveal)

	assert.Len(t, m.Visible(), 5, "first page of the Portrait photos")
}

func TestCategoryFilter(t *testing.T) {
	m, _ := newModel(t, fixture(20), 100, 20, nil)
	m.HandleAction(keymap.ActionJumpEnd, "G")

	cmd := m.HandleAction(keymap.ActionPickCategory, "4")
	assert.Equal(t, "Street", m.Category())
	assert.Equal(t, 0, m.scroll)
	for _, it := range m.Items() {
		assert.Equal(t, "Street", it.Category)
	}
	assert.Len(t, m.Items(), 5)
	assert.Contains(t, collect(cmd), tea.Msg(CategoryChangedMsg{Category: "Street"}))

	assert.Nil(t, m.HandleAction(keymap.ActionPickCategory, "4"), "same category")
}

func TestItemsAreSortedAndHiddenDropped(t *testing.T) {
	items := fixture(4)
	items[2].Featured = true
	items[1].Hidden = true
	m, _ := newModel(t, items, 100, 20, nil)

	assert.Equal(t, []string{"p03", "p01", "p04"}, ids(m.Items()))
	assert.Equal(t, 3, m.counts[photo.CategoryAll])
}

func TestResizeChangesColumnCount(t *testing.T) {
	m, _ := newModel(t, fixture(20), 100, 20, nil)

	m.Resize(60, 20)
	assert.Equal(t, 1, m.grid.ColumnCount())
	assert.Equal(t, 6, m.grid.Len())

	m.Resize(200, 20)
	assert.Equal(t, 4, m.grid.ColumnCount())
	assert.Equal(t, ids(m.Visible()), m.grid.Order())
}

func TestThumbnailLoadMeasuresTile(t *testing.T) {
	m, _ := newModel(t, fixture(6), 100, 40, thumbs.NewLoader(nil))
	require.Equal(t, tileLoading, m.tiles["p01"].state)

	m.Update(thumbs.LoadedMsg{ID: "hero:p01", Kind: thumbs.KindThumbnail, Image: image.NewNRGBA(image.Rect(0, 0, 10, 20))})
	assert.Equal(t, tileLoading, m.tiles["p01"].state, "hero loads are not tiles")

	m.Update(thumbs.LoadedMsg{ID: "p01", Kind: thumbs.KindSource, Image: image.NewNRGBA(image.Rect(0, 0, 10, 20))})
	assert.Equal(t, tileLoading, m.tiles["p01"].state, "lightbox loads are not tiles")

	m.Update(thumbs.LoadedMsg{ID: "p01", Kind: thumbs.KindThumbnail, Image: image.NewNRGBA(image.Rect(0, 0, 10, 20))})
	col := m.grid.Column(0)
	require.Equal(t, "p01", col[0].ID)
	assert.True(t, col[0].Measured)
	assert.InDelta(t, 2*m.colPx(), col[0].Height, 0.001)

	m.Update(thumbs.LoadFailedMsg{ID: "p02", Kind: thumbs.KindThumbnail, Err: errors.New("corrupt")})
	assert.Equal(t, tileFailed, m.tiles["p02"].state)
	col = m.grid.Column(1)
	assert.False(t, col[0].Measured)
	assert.InDelta(t, m.cfg.EstimatedHeight, col[0].Height, 0.001)
	assert.Contains(t, ansi.Strip(m.View()), "unavailable")
}

func TestKnownDimensionsWinOverImageBounds(t *testing.T) {
	items := fixture(2)
	items[0].Width, items[0].Height = 3000, 2000
	m, _ := newModel(t, items, 100, 40, thumbs.NewLoader(nil))

	m.Update(thumbs.LoadedMsg{ID: "p01", Kind: thumbs.KindThumbnail, Image: image.NewNRGBA(image.Rect(0, 0, 10, 10))})
	assert.InDelta(t, m.colPx()*2/3, m.grid.Column(0)[0].Height, 0.001)
}

func TestSelectOpensLightboxWithFilteredList(t *testing.T) {
	m, _ := newModel(t, fixture(20), 100, 20, nil)
	require.True(t, m.Select("p04"))
	assert.False(t, m.Select("p19"), "not revealed yet")

	msgs := collect(m.HandleAction(keymap.ActionSelect, "enter"))
	require.Len(t, msgs, 1)
	open, ok := msgs[0].(OpenMsg)
	require.True(t, ok)
	assert.Equal(t, "p04", open.ID)
	assert.Len(t, open.Items, 20)
}

func TestKeyboardNavigation(t *testing.T) {
	m, _ := newModel(t, fixture(6), 100, 40, nil)
	// column 0: p01 p03 p05, column 1: p02 p04 p06

	m.HandleAction(keymap.ActionMoveDown, "j")
	assert.Equal(t, "p03", m.Selected())
	m.HandleAction(keymap.ActionMoveRight, "l")
	assert.Equal(t, "p04", m.Selected())
	m.HandleAction(keymap.ActionMoveRight, "l")
	assert.Equal(t, "p04", m.Selected(), "no column to the right")
	m.HandleAction(keymap.ActionMoveUp, "k")
	assert.Equal(t, "p02", m.Selected())
	m.HandleAction(keymap.ActionJumpEnd, "G")
	assert.Equal(t, "p06", m.Selected())
	m.HandleAction(keymap.ActionJumpStart, "g")
	assert.Equal(t, "p01", m.Selected())
}

func TestClickOpensTile(t *testing.T) {
	m, _ := newModel(t, fixture(6), 100, 20, nil)
	click := func(x, y int) tea.Cmd {
		return m.Update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	}

	msgs := collect(click(1, 1))
	require.Len(t, msgs, 1)
	assert.Equal(t, "p01", msgs[0].(OpenMsg).ID)

	assert.Nil(t, click(50, 1), "gutter")

	msgs = collect(click(52, 1))
	require.Len(t, msgs, 1)
	assert.Equal(t, "p02", msgs[0].(OpenMsg).ID)
	assert.Equal(t, "p02", m.Selected())

	assert.Nil(t, m.Update(tea.MouseMsg{X: 1, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}))
}

func TestClickCategoryTab(t *testing.T) {
	m, _ := newModel(t, fixture(8), 100, 20, nil)
	bar := ansi.Strip(m.bar.View(100, m.counts))
	i := strings.Index(bar, "Travel")
	require.GreaterOrEqual(t, i, 0)

	m.Update(tea.MouseMsg{X: ansi.StringWidth(bar[:i]), Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, "Travel", m.Category())
}

func TestWheelScrolls(t *testing.T) {
	m, _ := newModel(t, fixture(6), 100, 20, nil)

	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Equal(t, 3, m.scroll)
	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, 0, m.scroll)
}

func TestSourceErrorIsShown(t *testing.T) {
	m, _ := newModel(t, nil, 100, 20, nil)
	m.Update(ItemsMsg{Err: errors.New("database is locked")})
	assert.Contains(t, ansi.Strip(m.View()), "database is locked")
}

func TestEmptyCategory(t *testing.T) {
	m, _ := newModel(t, fixture(2), 100, 20, nil)
	m.HandleAction(keymap.ActionPickCategory, "6")
	assert.Contains(t, ansi.Strip(m.View()), "No photos in this category")
}

func TestSourceChangeReloads(t *testing.T) {
	src := &fakeSource{items: fixture(3), changes: make(chan struct{}, 1)}
	m := New(src, nil, Options{Config: (&config.Config{}).GetGalleryConfig()})

	cmd := m.Update(changedMsg{})
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 2)

	src.items = fixture(5)
	msg := batch[0]()
	m.Update(msg)
	assert.Len(t, m.Items(), 5)
}

func TestSpinnerOnlyTicksWhileLoading(t *testing.T) {
	m, _ := newModel(t, fixture(3), 100, 20, nil)
	assert.Nil(t, m.Update(spinner.TickMsg{}))
}

func TestCloseCancelsPendingReveal(t *testing.T) {
	m, _ := newModel(t, fixture(20), 100, 20, nil)
	reveal, ok := findReveal(collect(m.HandleAction(keymap.ActionJumpEnd, "G")))
	require.True(t, ok)

	m.Close()
	m.Update(reveal)
	assert.Len(t, m.Visible(), 6)
	assert.False(t, m.Loading())
}
