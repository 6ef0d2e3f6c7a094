// Package slideshow implements the gallery hero: a shuffled, auto-advancing
// slideshow over the photos of the current category.
package slideshow

import (
	"image"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/photo"
	"github.com/llehouerou/folio/internal/thumbs"
	"github.com/llehouerou/folio/internal/ui"
	"github.com/llehouerou/folio/internal/ui/render"
	"github.com/llehouerou/folio/internal/ui/styles"
	"github.com/llehouerou/folio/internal/viewer"
)

// MaxSlides bounds the number of photos in rotation.
const MaxSlides = 12

// DefaultInterval is the auto-advance period.
const DefaultInterval = 4 * time.Second

// IDPrefix tags image requests made by the slideshow so its load messages
// are not mistaken for gallery thumbnails.
const IDPrefix = "hero:"

// captionHeight is the title row plus the description/dots row.
const captionHeight = 2

// advanceMsg fires the auto-advance. Stale generations are ignored.
type advanceMsg struct {
	gen int
}

// Model is the hero slideshow.
type Model struct {
	ui.Base
	nav      *viewer.Navigator
	loader   *thumbs.Loader
	interval time.Duration
	rng      *rand.Rand
	gen      int
	paused   bool

	images  map[string]image.Image
	failed  map[string]bool
	pending map[string]bool
	frames  map[string]string
}

// New creates an empty slideshow. A nil rng is seeded from the clock.
func New(loader *thumbs.Loader, interval time.Duration, rng *rand.Rand) Model {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if rng == nil {
		//nolint:gosec // shuffle order is not security sensitive
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return Model{
		nav:      viewer.New(nil, nil, viewer.Options{}),
		loader:   loader,
		interval: interval,
		rng:      rng,
		images:   make(map[string]image.Image),
		failed:   make(map[string]bool),
		pending:  make(map[string]bool),
		frames:   make(map[string]string),
	}
}

// SetItems shuffles items into the rotation and restarts from the first
// slide.
func (m *Model) SetItems(items []photo.Item) tea.Cmd {
	slides := slices.Clone(items)
	m.rng.Shuffle(len(slides), func(i, j int) { slides[i], slides[j] = slides[j], slides[i] })
	if len(slides) > MaxSlides {
		slides = slides[:MaxSlides]
	}
	if err := m.nav.Open(slides, ""); err != nil {
		m.nav.Close()
		m.gen++
		return nil
	}
	return m.restart()
}

// Empty reports whether there is nothing to show.
func (m Model) Empty() bool {
	return m.nav.Len() == 0
}

// Items returns the photos in rotation order.
func (m Model) Items() []photo.Item {
	return m.nav.Items()
}

// Index returns the current slide index, or -1 when empty.
func (m Model) Index() int {
	return m.nav.Index()
}

// Current returns the photo on screen.
func (m Model) Current() (photo.Item, bool) {
	return m.nav.Current()
}

// Paused reports whether auto-advance is off.
func (m Model) Paused() bool {
	return m.paused
}

// Next shows the following slide and restarts the timer.
func (m *Model) Next() tea.Cmd {
	m.nav.Next()
	return m.restart()
}

// Prev shows the preceding slide and restarts the timer.
func (m *Model) Prev() tea.Cmd {
	m.nav.Previous()
	return m.restart()
}

// Jump shows slide i (clamped) and restarts the timer.
func (m *Model) Jump(i int) tea.Cmd {
	m.nav.Jump(i)
	return m.restart()
}

// TogglePause stops or resumes auto-advance.
func (m *Model) TogglePause() tea.Cmd {
	m.paused = !m.paused
	return m.restart()
}

// restart invalidates the pending tick, schedules a new one and loads the
// current and next slides.
func (m *Model) restart() tea.Cmd {
	m.gen++
	cmds := []tea.Cmd{m.loadAround()}
	if !m.paused && m.nav.Len() > 1 {
		gen := m.gen
		cmds = append(cmds, tea.Tick(m.interval, func(time.Time) tea.Msg {
			return advanceMsg{gen: gen}
		}))
	}
	return tea.Batch(cmds...)
}

func (m *Model) loadAround() tea.Cmd {
	n := m.nav.Len()
	if n == 0 || m.loader == nil {
		return nil
	}
	w, h := m.imageBox()
	if w <= 0 || h <= 0 {
		return nil
	}
	pw, ph := thumbs.HalfBlockSize(w, h)
	var cmds []tea.Cmd
	for _, i := range []int{m.nav.Index(), (m.nav.Index() + 1) % n} {
		it := m.nav.Items()[i]
		if m.images[it.ID] != nil || m.failed[it.ID] || m.pending[it.ID] {
			continue
		}
		m.pending[it.ID] = true
		cmds = append(cmds, thumbs.LoadThumbnail(m.loader, IDPrefix+it.ID, it.Path, pw, ph))
	}
	return tea.Batch(cmds...)
}

// SetSize updates the hero size. Rendered frames are dropped; loaded images
// are kept and redrawn at the new size.
func (m *Model) SetSize(width, height int) {
	if width == m.Width() && height == m.Height() {
		return
	}
	m.Base.SetSize(width, height)
	clear(m.frames)
}

// Resize sets the size and loads images that were waiting for one.
func (m *Model) Resize(width, height int) tea.Cmd {
	m.SetSize(width, height)
	return m.loadAround()
}

func (m Model) imageBox() (int, int) {
	return m.Width(), m.Height() - captionHeight
}

// Update handles the advance tick and image loads addressed to the slideshow.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case advanceMsg:
		if msg.gen != m.gen || m.paused {
			return nil
		}
		return m.Next()
	case thumbs.LoadedMsg:
		id, ok := strings.CutPrefix(msg.ID, IDPrefix)
		if !ok {
			return nil
		}
		delete(m.pending, id)
		m.images[id] = msg.Image
		delete(m.frames, id)
	case thumbs.LoadFailedMsg:
		id, ok := strings.CutPrefix(msg.ID, IDPrefix)
		if !ok {
			return nil
		}
		delete(m.pending, id)
		m.failed[id] = true
	}
	return nil
}

// Forget drops cached images, e.g. after photos were edited on disk.
func (m *Model) Forget() {
	clear(m.images)
	clear(m.failed)
	clear(m.frames)
}

// HandleClick reacts to a click at (x, y) relative to the hero. A click on
// the dots row jumps to that slide; the left and right edges step; anything
// else reports the photo to open.
func (m *Model) HandleClick(x, y int) (open photo.Item, ok bool, cmd tea.Cmd) {
	if m.Empty() {
		return photo.Item{}, false, nil
	}
	w := m.Width()
	if y == m.Height()-1 {
		dots := render.Dots(m.nav.Len(), m.nav.Index())
		start := w - len([]rune(dots))
		if x >= start && (x-start)%2 == 0 {
			return photo.Item{}, false, m.Jump((x - start) / 2)
		}
		return photo.Item{}, false, nil
	}
	switch {
	case x < 3:
		return photo.Item{}, false, m.Prev()
	case x >= w-3:
		return photo.Item{}, false, m.Next()
	}
	cur, _ := m.nav.Current()
	return cur, true, nil
}

// View renders the hero.
func (m *Model) View() string {
	if m.Empty() || m.Width() <= 0 || m.Height() <= captionHeight {
		return ""
	}
	s := styles.T().S()
	cur, _ := m.nav.Current()
	w, h := m.imageBox()

	var lines []string
	switch {
	case m.images[cur.ID] != nil:
		frame, ok := m.frames[cur.ID]
		if !ok {
			frame = thumbs.RenderHalfBlocks(m.images[cur.ID], w, h)
			m.frames[cur.ID] = frame
		}
		lines = strings.Split(frame, "\n")
	case m.failed[cur.ID]:
		lines = placeholder(w, h, s.Error.Render("image unavailable"))
	default:
		lines = placeholder(w, h, "")
		for i := range lines {
			lines[i] = s.Skeleton.Render(lines[i])
		}
	}

	title := s.Title.Render(render.Truncate(cur.DisplayTitle(), w))
	if m.paused {
		title = render.Row(title, s.Subtle.Render("paused"), w)
	}
	dots := s.Active.Render(render.Dots(m.nav.Len(), m.nav.Index()))
	desc := s.Muted.Render(render.Truncate(cur.Description, max(w-len([]rune(render.Dots(m.nav.Len(), 0)))-1, 0)))
	lines = append(lines, title, render.Row(desc, dots, w))
	return strings.Join(lines, "\n")
}

func placeholder(w, h int, label string) []string {
	lines := make([]string, h)
	for i := range lines {
		lines[i] = strings.Repeat(" ", w)
	}
	if label != "" && h > 0 {
		lines[h/2] = render.Center(label, w)
	}
	return lines
}
