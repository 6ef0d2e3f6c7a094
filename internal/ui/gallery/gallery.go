// Package gallery is the portfolio's main view: a category bar, the hero
// slideshow and a masonry grid that reveals photos page by page as the user
// scrolls towards its end.
package gallery

import (
	"context"
	"image"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/config"
	"github.com/llehouerou/folio/internal/masonry"
	"github.com/llehouerou/folio/internal/paginate"
	"github.com/llehouerou/folio/internal/photo"
	"github.com/llehouerou/folio/internal/thumbs"
	"github.com/llehouerou/folio/internal/ui"
	"github.com/llehouerou/folio/internal/ui/categorybar"
	"github.com/llehouerou/folio/internal/ui/layout"
	"github.com/llehouerou/folio/internal/ui/slideshow"
)

// Default cell size in pixels, used when the terminal does not report one.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// Options configures a gallery.
type Options struct {
	Config     config.GalleryConfig
	CellWidth  int // px, 0 = DefaultCellWidth
	CellHeight int // px, 0 = DefaultCellHeight
	Category   string

	Slideshow         bool
	SlideshowInterval time.Duration
	Rand              *rand.Rand // slideshow shuffle, nil = seeded from the clock

	Now func() time.Time // nil = time.Now
}

type tileState int

const (
	tileLoading tileState = iota
	tileLoaded
	tileFailed
)

type tile struct {
	state  tileState
	img    image.Image
	aspect float64 // height / width, 0 until known

	frame          []string
	frameW, frameH int
}

// Model is the gallery view.
type Model struct {
	ui.Base
	source photo.Source
	loader *thumbs.Loader
	cfg    config.GalleryConfig
	now    func() time.Time

	cellW, cellH int
	breakpoints  masonry.Breakpoints
	tileCols     int

	all    []photo.Item // raw source list
	items  []photo.Item // prepared for the current category
	byID   map[string]photo.Item
	counts map[string]int
	loaded bool
	err    error

	pager    *paginate.Paginator[photo.Item]
	throttle *paginate.Throttle
	grid     *masonry.Balancer
	tiles    map[string]*tile

	bar      categorybar.Model
	hero     slideshow.Model
	showHero bool
	spin     spinner.Model

	selected string
	scroll   int // first visible grid row
}

// New creates a gallery reading photos from source. loader may be nil, in
// which case tiles stay placeholders.
func New(source photo.Source, loader *thumbs.Loader, opts Options) Model {
	cfg := opts.Config
	cellW, cellH := opts.CellWidth, opts.CellHeight
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return Model{
		source:      source,
		loader:      loader,
		cfg:         cfg,
		now:         now,
		cellW:       cellW,
		cellH:       cellH,
		breakpoints: cfg.BreakpointSet(),
		byID:        make(map[string]photo.Item),
		pager:       paginate.New[photo.Item](nil, cfg.PageSize, cfg.ScrollThreshold),
		throttle:    paginate.NewThrottle(cfg.ThrottleInterval()),
		grid: masonry.New(1, masonry.Options{
			Gap:             cfg.Gap,
			EstimatedHeight: cfg.EstimatedHeight,
		}),
		tiles:    make(map[string]*tile),
		bar:      categorybar.New(opts.Category),
		hero:     slideshow.New(loader, opts.SlideshowInterval, opts.Rand),
		showHero: opts.Slideshow,
		spin:     spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
}

// ItemsMsg carries a fresh read of the photo source.
type ItemsMsg struct {
	Items []photo.Item
	Err   error
}

// OpenMsg asks for the lightbox over Items, starting at ID.
type OpenMsg struct {
	Items []photo.Item
	ID    string
}

// CategoryChangedMsg reports a new category filter.
type CategoryChangedMsg struct {
	Category string
}

type changedMsg struct{}

type revealMsg struct {
	ticket paginate.Ticket
}

type trailingMsg struct {
	token uint64
}

// Init loads the photos and starts watching the source.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.watch())
}

func (m Model) load() tea.Cmd {
	src := m.source
	return func() tea.Msg {
		items, err := src.Items(context.Background())
		return ItemsMsg{Items: items, Err: err}
	}
}

// watch blocks until the source reports a change.
func (m Model) watch() tea.Cmd {
	ch := m.source.Changes()
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

// Close drops pending reveals and throttled evaluations.
func (m *Model) Close() {
	m.pager.Cancel()
	m.throttle.Reset()
}

// Category returns the active category ID.
func (m Model) Category() string {
	return m.bar.Selected()
}

// Items returns the photos of the current category, revealed or not.
func (m Model) Items() []photo.Item {
	return m.items
}

// Visible returns the revealed photos.
func (m Model) Visible() []photo.Item {
	return m.pager.Visible()
}

// Selected returns the ID of the highlighted photo.
func (m Model) Selected() string {
	return m.selected
}

// Select highlights a revealed photo. Reports false when id is not on the
// grid.
func (m *Model) Select(id string) bool {
	if _, ok := m.grid.ColumnOf(id); !ok {
		return false
	}
	m.selected = id
	m.ensureVisible()
	return true
}

// Loading reports whether a page reveal is pending.
func (m Model) Loading() bool {
	return m.pager.Loading()
}

// Resize lays the gallery out for a new size. The column count follows the
// breakpoints and is applied before anything else is appended.
func (m *Model) Resize(width, height int) tea.Cmd {
	m.SetSize(width, height)
	m.grid.SetColumnCount(m.breakpoints.ColumnsFor(float64(width * m.cellW)))
	if tw := layout.TileWidth(width, m.grid.ColumnCount()); tw != m.tileCols {
		m.tileCols = tw
		m.remeasure()
	}
	m.ensureVisible()
	return tea.Batch(
		m.layoutHero(),
		m.requestThumbs(m.pager.Visible()),
		m.sample(),
	)
}

// applyItems rebuilds the category sequence from the raw list and restarts
// pagination from the first page.
func (m *Model) applyItems() tea.Cmd {
	m.items = photo.Prepare(m.all, m.bar.Selected())
	m.counts = categorybar.Counts(m.all)
	clear(m.byID)
	for _, it := range m.items {
		m.byID[it.ID] = it
	}
	for id := range m.tiles {
		if _, ok := m.byID[id]; !ok {
			delete(m.tiles, id)
		}
	}

	m.pager.ItemsChanged(m.items)
	m.throttle.Reset()
	m.grid.Layout(m.entries(m.pager.Visible()))

	if _, ok := m.grid.ColumnOf(m.selected); !ok {
		m.selected = m.first()
	}
	m.clampScroll()

	var heroCmd tea.Cmd
	if m.showHero {
		heroCmd = m.hero.SetItems(m.items)
	}
	return tea.Batch(
		heroCmd,
		m.layoutHero(),
		m.requestThumbs(m.pager.Visible()),
		m.sample(),
	)
}

func (m *Model) setCategory(changed bool) tea.Cmd {
	if !changed {
		return nil
	}
	m.scroll = 0
	m.selected = ""
	cat := m.bar.Selected()
	return tea.Batch(
		m.applyItems(),
		func() tea.Msg { return CategoryChangedMsg{Category: cat} },
	)
}

// SetCategory switches the filter programmatically, e.g. when restoring
// saved state.
func (m *Model) SetCategory(category string) tea.Cmd {
	return m.setCategory(m.bar.Select(category))
}

func (m Model) heroHeight() int {
	if !m.showHero || m.hero.Empty() {
		return 0
	}
	return layout.SlideshowHeight(m.Height(), true)
}

func (m *Model) layoutHero() tea.Cmd {
	if !m.showHero {
		return nil
	}
	return m.hero.Resize(m.Width(), m.heroHeight())
}

// gridHeight is the number of rows the masonry grid gets.
func (m Model) gridHeight() int {
	return max(m.Height()-categorybar.Height-m.heroHeight(), 0)
}

// colPx is the pixel width of one column.
func (m Model) colPx() float64 {
	return float64(m.tileCols * m.cellW)
}

// entries builds balancer entries, giving loaded tiles their real height.
func (m Model) entries(items []photo.Item) []masonry.Entry {
	out := make([]masonry.Entry, len(items))
	for i, it := range items {
		out[i] = masonry.Entry{ID: it.ID}
		if t := m.tiles[it.ID]; t != nil && t.aspect > 0 && m.tileCols > 0 {
			out[i].Height = t.aspect * m.colPx()
		}
	}
	return out
}

// remeasure rescales every loaded tile to the current column width.
func (m *Model) remeasure() {
	for id, t := range m.tiles {
		t.frame = nil
		if t.aspect > 0 {
			m.grid.Measure(id, t.aspect*m.colPx())
		}
	}
}

func (m Model) first() string {
	order := m.grid.Order()
	if len(order) == 0 {
		return ""
	}
	return order[0]
}

// requestThumbs starts loading the tiles of items that were never requested.
func (m *Model) requestThumbs(items []photo.Item) tea.Cmd {
	if m.loader == nil || m.tileCols <= 0 {
		return nil
	}
	pw, ph := m.tileCols, m.tileCols*3
	var cmds []tea.Cmd
	for _, it := range items {
		if _, ok := m.tiles[it.ID]; ok {
			continue
		}
		m.tiles[it.ID] = &tile{state: tileLoading}
		cmds = append(cmds, thumbs.LoadThumbnail(m.loader, it.ID, it.Path, pw, ph))
	}
	return tea.Batch(cmds...)
}

// open asks for the lightbox on the selected photo.
func (m Model) open() tea.Cmd {
	if _, ok := m.byID[m.selected]; !ok {
		return nil
	}
	return openCmd(m.items, m.selected)
}

func openCmd(items []photo.Item, id string) tea.Cmd {
	items = slices.Clone(items)
	return func() tea.Msg { return OpenMsg{Items: items, ID: id} }
}
