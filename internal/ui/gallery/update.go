package gallery

import (
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/keymap"
	"github.com/llehouerou/folio/internal/thumbs"
	"github.com/llehouerou/folio/internal/ui/categorybar"
	"github.com/llehouerou/folio/internal/ui/cursor"
	"github.com/llehouerou/folio/internal/ui/slideshow"
)

// Update handles source reads, reveal timers and image loads.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ItemsMsg:
		if msg.Err != nil {
			m.err = msg.Err
			log.Printf("gallery: load photos: %v", msg.Err)
			return nil
		}
		m.err = nil
		m.loaded = true
		m.all = msg.Items
		return m.applyItems()

	case changedMsg:
		return tea.Batch(m.load(), m.watch())

	case revealMsg:
		added, ok := m.pager.Reveal(msg.ticket)
		if !ok {
			return nil
		}
		m.grid.Append(m.entries(added))
		if m.selected == "" {
			m.selected = m.first()
		}
		return tea.Batch(m.requestThumbs(added), m.sample())

	case trailingMsg:
		if !m.throttle.Trailing(msg.token, m.now()) {
			return nil
		}
		return m.evaluate()

	case spinner.TickMsg:
		if !m.pager.Loading() {
			return nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return cmd

	case thumbs.LoadedMsg:
		if strings.HasPrefix(msg.ID, slideshow.IDPrefix) {
			return m.hero.Update(msg)
		}
		if msg.Kind != thumbs.KindThumbnail {
			return nil
		}
		return m.thumbLoaded(msg)

	case thumbs.LoadFailedMsg:
		if strings.HasPrefix(msg.ID, slideshow.IDPrefix) {
			return m.hero.Update(msg)
		}
		if msg.Kind != thumbs.KindThumbnail {
			return nil
		}
		if t := m.tiles[msg.ID]; t != nil {
			t.state = tileFailed
			log.Printf("gallery: thumbnail %s: %v", msg.ID, msg.Err)
		}
		return nil

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m.hero.Update(msg)
}

// thumbLoaded swaps a tile's estimate for the height of its image.
func (m *Model) thumbLoaded(msg thumbs.LoadedMsg) tea.Cmd {
	t := m.tiles[msg.ID]
	if t == nil {
		return nil
	}
	t.state = tileLoaded
	t.img = msg.Image
	t.frame = nil
	t.aspect = m.byID[msg.ID].AspectHeight(1)
	if t.aspect == 0 && msg.Image != nil {
		if b := msg.Image.Bounds(); b.Dx() > 0 {
			t.aspect = float64(b.Dy()) / float64(b.Dx())
		}
	}
	if t.aspect > 0 && m.tileCols > 0 {
		m.grid.Measure(msg.ID, t.aspect*m.colPx())
	}
	m.clampScroll()
	return m.sample()
}

// sample feeds the current scroll position through the throttle.
func (m *Model) sample() tea.Cmd {
	d := m.throttle.Sample(m.now())
	switch {
	case d.Fire:
		return m.evaluate()
	case d.Schedule:
		token := d.Token
		return tea.Tick(d.Wait, func(time.Time) tea.Msg {
			return trailingMsg{token: token}
		})
	}
	return nil
}

// evaluate reports the viewport's distance to the end of the content and
// schedules a reveal when the paginator asks for one.
func (m *Model) evaluate() tea.Cmd {
	if m.tileCols == 0 || m.gridHeight() == 0 {
		return nil
	}
	ticket, ok := m.pager.NotifyScrollProximity(m.distance())
	if !ok {
		return nil
	}
	return tea.Batch(
		m.spin.Tick,
		tea.Tick(m.cfg.RevealDelay(), func(time.Time) tea.Msg {
			return revealMsg{ticket: ticket}
		}),
	)
}

// distance is the pixel gap between the bottom of the viewport and the
// bottom of the tallest column. Negative when the viewport extends past it.
func (m Model) distance() float64 {
	bottom := float64((m.scroll + m.gridHeight()) * m.cellH)
	return m.grid.MaxHeight() - bottom
}

// HandleAction runs a gallery action. key is the pressed key, used by
// ActionPickCategory.
func (m *Model) HandleAction(a keymap.Action, key string) tea.Cmd {
	switch a { //nolint:exhaustive // only gallery actions
	case keymap.ActionMoveUp:
		return m.moveVertical(-1)
	case keymap.ActionMoveDown:
		return m.moveVertical(1)
	case keymap.ActionMoveLeft:
		return m.moveHorizontal(-1)
	case keymap.ActionMoveRight:
		return m.moveHorizontal(1)
	case keymap.ActionPageUp:
		return m.page(-1)
	case keymap.ActionPageDown:
		return m.page(1)
	case keymap.ActionJumpStart:
		return m.jump(false)
	case keymap.ActionJumpEnd:
		return m.jump(true)
	case keymap.ActionSelect:
		return m.open()
	case keymap.ActionNextCategory:
		return m.setCategory(m.bar.Next())
	case keymap.ActionPrevCategory:
		return m.setCategory(m.bar.Prev())
	case keymap.ActionPickCategory:
		return m.setCategory(m.bar.Pick(key))
	case keymap.ActionSlidePrev:
		return m.hero.Prev()
	case keymap.ActionSlideNext:
		return m.hero.Next()
	case keymap.ActionToggleSlideshow:
		return m.hero.TogglePause()
	}
	return nil
}

// handleMouse handles wheel scrolling and clicks. Coordinates are relative
// to the gallery's top-left corner.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button { //nolint:exhaustive // only wheel and left button
	case tea.MouseButtonWheelUp:
		return m.scrollBy(-cursor.WheelStep)
	case tea.MouseButtonWheelDown:
		return m.scrollBy(cursor.WheelStep)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		return m.click(msg.X, msg.Y)
	}
	return nil
}

func (m *Model) click(x, y int) tea.Cmd {
	if y < categorybar.Height {
		cat, ok := m.bar.TabAt(x, m.Width(), m.counts)
		if !ok {
			return nil
		}
		return m.setCategory(m.bar.Select(cat))
	}
	y -= categorybar.Height

	hh := m.heroHeight()
	if y < hh {
		it, open, cmd := m.hero.HandleClick(x, y)
		if open {
			return openCmd(m.hero.Items(), it.ID)
		}
		return cmd
	}
	y -= hh

	id, ok := m.tileAt(x, m.scroll+y)
	if !ok {
		return nil
	}
	m.selected = id
	return m.open()
}
