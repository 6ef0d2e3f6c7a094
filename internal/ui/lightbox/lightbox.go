// Package lightbox shows one photo at a time over the gallery, with zoom,
// pan, a details panel and previous/next navigation.
package lightbox

import (
	"fmt"
	"image"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/photo"
	"github.com/llehouerou/folio/internal/thumbs"
	"github.com/llehouerou/folio/internal/ui"
	"github.com/llehouerou/folio/internal/ui/layout"
	"github.com/llehouerou/folio/internal/viewer"
	"github.com/llehouerou/folio/internal/zoom"
)

// DefaultDoubleClick is the longest gap between the clicks of a double click.
const DefaultDoubleClick = 400 * time.Millisecond

// Options configures the lightbox.
type Options struct {
	DoubleClick time.Duration
	ClampPan    bool
	StrictStart bool
	// Lock is told when the lightbox opens and closes, so the view behind it
	// stops scrolling. May be nil.
	Lock viewer.ScrollLock
}

// CloseMsg reports that the lightbox closed on photo ID. Cleanup holds the
// terminal commands that remove a graphics-protocol image; the receiver must
// write it once.
type CloseMsg struct {
	ID      string
	Cleanup string
}

type clickMsg struct {
	gen int
}

type statusMsg struct {
	text string
	err  bool
}

// box is the image area on screen, relative to the lightbox.
type box struct {
	x, y, w, h int
}

func (b box) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

// Model is the lightbox.
type Model struct {
	ui.Base
	nav      *viewer.Navigator
	loader   *thumbs.Loader
	renderer *thumbs.Renderer
	opts     Options

	images  map[string]image.Image
	failed  map[string]error
	pending map[string]bool

	box      box
	shown    string // key of the frame handed to the renderer
	transmit string

	clickGen   int
	clickAt    *zoom.Point // first click of a possible double click, in percent
	pressed    bool
	pressMoved bool

	info      bool
	infoText  map[string]string
	status    string
	statusErr bool
}

// New creates a closed lightbox. A nil renderer draws half blocks.
func New(loader *thumbs.Loader, renderer *thumbs.Renderer, opts Options) Model {
	if opts.DoubleClick <= 0 {
		opts.DoubleClick = DefaultDoubleClick
	}
	if renderer == nil {
		renderer = thumbs.NewRenderer(nil)
	}
	z := zoom.New(zoom.Options{ClampPan: opts.ClampPan})
	return Model{
		nav:      viewer.New(opts.Lock, z, viewer.Options{StrictStart: opts.StrictStart}),
		loader:   loader,
		renderer: renderer,
		opts:     opts,
		images:   make(map[string]image.Image),
		failed:   make(map[string]error),
		pending:  make(map[string]bool),
		infoText: make(map[string]string),
	}
}

// Open shows items starting at startID.
func (m *Model) Open(items []photo.Item, startID string) (tea.Cmd, error) {
	if err := m.nav.Open(items, startID); err != nil {
		return nil, fmt.Errorf("open lightbox: %w", err)
	}
	m.status = ""
	m.cancelClick()
	m.refresh()
	return m.loadAround(), nil
}

// Close hides the lightbox and reports the photo it was on.
func (m *Model) Close() tea.Cmd {
	if !m.nav.IsOpen() {
		return nil
	}
	cur, _ := m.nav.Current()
	m.nav.Close()
	m.cancelClick()
	m.pressed = false
	m.shown = ""
	m.transmit = ""
	msg := CloseMsg{ID: cur.ID, Cleanup: m.renderer.Clear()}
	return func() tea.Msg { return msg }
}

// IsOpen reports whether a photo is on screen.
func (m Model) IsOpen() bool {
	return m.nav.IsOpen()
}

// Current returns the photo on screen.
func (m Model) Current() (photo.Item, bool) {
	return m.nav.Current()
}

// Index returns the position of the current photo, -1 when closed.
func (m Model) Index() int {
	return m.nav.Index()
}

// Zoom returns the zoom state of the current photo.
func (m Model) Zoom() zoom.State {
	return m.nav.Zoom().State()
}

// Resize sets the lightbox size and redraws.
func (m *Model) Resize(width, height int) {
	m.SetSize(width, height)
	m.refresh()
}

func (m *Model) next() tea.Cmd {
	m.nav.Next()
	return m.moved()
}

func (m *Model) previous() tea.Cmd {
	m.nav.Previous()
	return m.moved()
}

func (m *Model) moved() tea.Cmd {
	m.cancelClick()
	m.pressed = false
	m.status = ""
	m.refresh()
	return m.loadAround()
}

// loadAround loads the current photo and its neighbours.
func (m *Model) loadAround() tea.Cmd {
	n := m.nav.Len()
	if n == 0 || m.loader == nil {
		return nil
	}
	items := m.nav.Items()
	i := m.nav.Index()
	var cmds []tea.Cmd
	for _, j := range []int{i, (i + 1) % n, (i - 1 + n) % n} {
		it := items[j]
		if m.images[it.ID] != nil || m.failed[it.ID] != nil || m.pending[it.ID] {
			continue
		}
		m.pending[it.ID] = true
		cmds = append(cmds, thumbs.LoadSource(m.loader, it.ID, it.Path))
	}
	return tea.Batch(cmds...)
}

// currentFailed reports whether the photo on screen could not be loaded.
// Such photos ignore zoom and pan.
func (m Model) currentFailed() bool {
	cur, ok := m.nav.Current()
	return ok && m.failed[cur.ID] != nil
}

// area returns the cells available to the image.
func (m Model) area() (int, int) {
	return layout.LightboxImageArea(m.Width(), m.Height(), m.info)
}

// refresh recomputes the image box and hands a new frame to the renderer
// when the photo, the box or the zoom state changed.
func (m *Model) refresh() {
	cur, ok := m.nav.Current()
	cols, rows := m.area()
	if ok && m.failed[cur.ID] != nil {
		// The error placeholder occupies the two centred rows.
		m.box = box{x: 0, y: rows / 2, w: cols, h: min(2, rows-rows/2)}
		return
	}
	img := m.images[cur.ID]
	if !ok || img == nil {
		m.box = box{}
		return
	}
	cw, ch := m.renderer.PixelSize(1, 1)
	b := img.Bounds()
	bc, br := layout.FitImage(cols, rows, b.Dx(), b.Dy(), cw, ch)
	if bc <= 0 || br <= 0 {
		m.box = box{}
		return
	}
	m.box = box{x: (cols - bc) / 2, y: (rows - br) / 2, w: bc, h: br}

	z := m.nav.Zoom()
	z.SetBox(float64(bc), float64(br))
	st := z.State()
	key := fmt.Sprintf("%s/%dx%d/%.3f/%.2f,%.2f/%.2f,%.2f",
		cur.ID, bc, br, st.Scale, st.Origin.X, st.Origin.Y, st.Pan.X, st.Pan.Y)
	if key == m.shown {
		return
	}
	m.shown = key

	pw, ph := m.renderer.PixelSize(bc, br)
	r := z.Viewport(float64(b.Dx()), float64(b.Dy()), float64(bc), float64(br))
	m.transmit = m.renderer.Show(thumbs.Frame(img, r, pw, ph), bc, br)
}

// Transmit returns the terminal commands that upload the current frame for
// graphics protocols. It must precede the view.
func (m Model) Transmit() string {
	return m.transmit
}

// Placement returns the command drawing the current frame, given the
// lightbox's 1-based terminal position.
func (m Model) Placement(row, col int) string {
	if m.box.w == 0 || m.currentFailed() || !m.renderer.HasImage() {
		return ""
	}
	return m.renderer.Place(row+m.box.y, col+m.box.x)
}
