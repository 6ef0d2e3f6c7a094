package lightbox

import (
	"errors"
	"image"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/folio/internal/keymap"
	"github.com/llehouerou/folio/internal/photo"
	"github.com/llehouerou/folio/internal/thumbs"
	"github.com/llehouerou/folio/internal/viewer"
	"github.com/llehouerou/folio/internal/zoom"
)

var photos = []photo.Item{
	{ID: "a", Title: "Harbour", Category: "Travel", Path: "/photos/a.jpg", Description: "Shot at **dawn**."},
	{ID: "b", Title: "Market", Category: "Street", Path: "/photos/b.jpg"},
	{ID: "c", Title: "Ridge", Category: "Landscape", Path: "/photos/c.jpg"},
}

// openAt returns an 80x24 lightbox on photo id with a 200x100 image loaded.
// The image box is then 80x20 cells at row 1.
func openAt(t *testing.T, id string) *Model {
	t.Helper()
	m := New(thumbs.NewLoader(nil), nil, Options{})
	m.Resize(80, 24)
	_, err := m.Open(photos, id)
	require.NoError(t, err)
	m.Update(thumbs.LoadedMsg{ID: id, Kind: thumbs.KindSource, Image: image.NewNRGBA(image.Rect(0, 0, 200, 100))})
	require.Equal(t, box{x: 0, y: 1, w: 80, h: 20}, m.box)
	return &m
}

func mouse(action tea.MouseAction, button tea.MouseButton, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func click(m *Model, x, y int) tea.Cmd {
	m.Update(mouse(tea.MouseActionPress, tea.MouseButtonLeft, x, y))
	return m.Update(mouse(tea.MouseActionRelease, tea.MouseButtonLeft, x, y))
}

func TestOpen(t *testing.T) {
	m := New(nil, nil, Options{})
	_, err := m.Open(photos, "missing")
	require.NoError(t, err)
	assert.Equal(t, 0, m.Index(), "unknown start falls back to the first photo")

	strict := New(nil, nil, Options{StrictStart: true})
	_, err = strict.Open(photos, "missing")
	assert.ErrorIs(t, err, viewer.ErrUnknownStart)
	assert.False(t, strict.IsOpen())

	_, err = m.Open(nil, "")
	assert.ErrorIs(t, err, viewer.ErrEmpty)
}

func TestNavigationWrapsAndResetsZoom(t *testing.T) {
	m := openAt(t, "c")

	m.HandleAction(keymap.ActionZoomIn)
	assert.InDelta(t, 1.25, m.Zoom().Scale, 1e-9)

	m.HandleAction(keymap.ActionNext)
	cur, _ := m.Current()
	assert.Equal(t, "a", cur.ID)
	assert.InDelta(t, 1.0, m.Zoom().Scale, 1e-9)

	m.HandleAction(keymap.ActionPrevious)
	cur, _ = m.Current()
	assert.Equal(t, "c", cur.ID)
}

func TestNavigationLoadsNeighbours(t *testing.T) {
	m := New(thumbs.NewLoader(nil), nil, Options{})
	_, err := m.Open(photos, "b")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, m.pending)
}

func TestKeyboardZoom(t *testing.T) {
	m := openAt(t, "a")

	m.HandleAction(keymap.ActionZoomIn)
	m.HandleAction(keymap.ActionZoomIn)
	assert.InDelta(t, 1.5, m.Zoom().Scale, 1e-9)
	assert.Contains(t, ansi.Strip(m.View()), "150%")

	m.HandleAction(keymap.ActionZoomOut)
	assert.InDelta(t, 1.25, m.Zoom().Scale, 1e-9)

	m.HandleAction(keymap.ActionZoomReset)
	assert.Equal(t, zoom.State{Scale: 1, Origin: zoom.Point{X: 50, Y: 50}}, m.Zoom())
}

func TestSingleClickWaitsForDoubleClickWindow(t *testing.T) {
	m := openAt(t, "a")

	cmd := click(m, 40, 10)
	require.NotNil(t, cmd)
	assert.InDelta(t, 1.0, m.Zoom().Scale, 1e-9, "nothing happens before the window elapses")

	m.Update(clickMsg{gen: m.clickGen})
	assert.InDelta(t, zoom.ClickScale, m.Zoom().Scale, 1e-9)
	assert.InDelta(t, 40.5/80*100, m.Zoom().Origin.X, 1e-9)
	assert.InDelta(t, 9.5/20*100, m.Zoom().Origin.Y, 1e-9)

	click(m, 40, 10)
	m.Update(clickMsg{gen: m.clickGen})
	assert.InDelta(t, 1.0, m.Zoom().Scale, 1e-9, "second click resets")
}

func TestDoubleClick(t *testing.T) {
	m := openAt(t, "a")

	require.NotNil(t, click(m, 40, 10))
	firstGen := m.clickGen
	assert.Nil(t, click(m, 40, 10))
	assert.InDelta(t, zoom.DoubleClickScale, m.Zoom().Scale, 1e-9)

	m.Update(clickMsg{gen: firstGen})
	assert.InDelta(t, zoom.DoubleClickScale, m.Zoom().Scale, 1e-9, "single click timer was cancelled")
}

func TestDragPans(t *testing.T) {
	m := openAt(t, "a")
	m.HandleAction(keymap.ActionZoomIn)

	m.Update(mouse(tea.MouseActionPress, tea.MouseButtonLeft, 40, 10))
	assert.True(t, m.Zoom().Dragging)
	m.Update(mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 45, 12))
	cmd := m.Update(mouse(tea.MouseActionRelease, tea.MouseButtonLeft, 45, 12))

	assert.Nil(t, cmd, "a drag is not a click")
	assert.Equal(t, zoom.Point{X: 5, Y: 2}, m.Zoom().Pan)
	assert.False(t, m.Zoom().Dragging)
}

func TestWheelZooms(t *testing.T) {
	m := openAt(t, "a")

	m.Update(mouse(tea.MouseActionPress, tea.MouseButtonWheelUp, 40, 10))
	assert.InDelta(t, 1.25, m.Zoom().Scale, 1e-9)
	m.Update(mouse(tea.MouseActionPress, tea.MouseButtonWheelDown, 40, 10))
	assert.InDelta(t, 1.0, m.Zoom().Scale, 1e-9)

	m.Update(mouse(tea.MouseActionPress, tea.MouseButtonWheelUp, 40, 22))
	assert.InDelta(t, 1.0, m.Zoom().Scale, 1e-9, "outside the image")
}

func TestFailedImageIgnoresZoom(t *testing.T) {
	m := New(thumbs.NewLoader(nil), nil, Options{})
	m.Resize(80, 24)
	_, err := m.Open(photos, "b")
	require.NoError(t, err)
	m.Update(thumbs.LoadFailedMsg{ID: "b", Kind: thumbs.KindSource, Err: errors.New("unexpected EOF")})

	m.HandleAction(keymap.ActionZoomIn)
	m.Update(mouse(tea.MouseActionPress, tea.MouseButtonWheelUp, 40, 10))
	assert.InDelta(t, 1.0, m.Zoom().Scale, 1e-9)

	out := ansi.Strip(m.View())
	assert.Contains(t, out, "image unavailable")
	assert.Contains(t, out, "unexpected EOF")

	m.HandleAction(keymap.ActionNext)
	cur, _ := m.Current()
	assert.Equal(t, "c", cur.ID, "navigation still works")
}

func TestLoadsForOtherRequestsAreIgnored(t *testing.T) {
	m := New(thumbs.NewLoader(nil), nil, Options{})
	m.Resize(80, 24)
	_, err := m.Open(photos, "a")
	require.NoError(t, err)

	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	m.Update(thumbs.LoadedMsg{ID: "a", Kind: thumbs.KindThumbnail, Image: img})
	m.Update(thumbs.LoadedMsg{ID: "z", Kind: thumbs.KindSource, Image: img})
	assert.Empty(t, m.images)
}

func TestBackdropClickCloses(t *testing.T) {
	m := openAt(t, "b")

	cmd := click(m, 40, 0)
	require.NotNil(t, cmd)
	assert.Equal(t, CloseMsg{ID: "b"}, cmd())
	assert.False(t, m.IsOpen())
}

func TestFailedPlaceholderClickKeepsOpen(t *testing.T) {
	m := New(thumbs.NewLoader(nil), nil, Options{})
	m.Resize(80, 24)
	_, err := m.Open(photos, "b")
	require.NoError(t, err)
	m.Update(thumbs.LoadFailedMsg{ID: "b", Kind: thumbs.KindSource, Err: errors.New("unexpected EOF")})

	cols, rows := m.area()
	assert.Equal(t, box{x: 0, y: rows / 2, w: cols, h: 2}, m.box)
	assert.Empty(t, m.Placement(1, 1))

	assert.Nil(t, click(&m, 40, rows/2))
	assert.Nil(t, click(&m, 40, rows/2+1))
	assert.True(t, m.IsOpen())

	cmd := click(&m, 40, 0)
	require.NotNil(t, cmd)
	assert.Equal(t, CloseMsg{ID: "b"}, cmd())
	assert.False(t, m.IsOpen())
}

func TestEscapeCloses(t *testing.T) {
	m := openAt(t, "c")
	cmd := m.HandleAction(keymap.ActionClose)
	require.NotNil(t, cmd)
	assert.Equal(t, CloseMsg{ID: "c"}, cmd())
	assert.Nil(t, m.HandleAction(keymap.ActionNext), "closed")
}

func TestInfoPanel(t *testing.T) {
	m := New(thumbs.NewLoader(nil), nil, Options{})
	m.Resize(120, 30)
	_, err := m.Open(photos, "a")
	require.NoError(t, err)

	assert.NotContains(t, ansi.Strip(m.View()), "dawn")
	m.HandleAction(keymap.ActionToggleInfo)

	out := ansi.Strip(m.View())
	assert.Contains(t, out, "Travel")
	assert.Contains(t, out, "dawn")
	assert.NotContains(t, out, "**")
}

func TestViewShowsPosition(t *testing.T) {
	m := openAt(t, "b")
	out := ansi.Strip(m.View())
	assert.Contains(t, out, "Market")
	assert.Contains(t, out, "2 / 3")
	assert.Contains(t, out, "esc close")
}
