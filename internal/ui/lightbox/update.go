package lightbox

import (
	"errors"
	"log"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/skratchdot/open-golang/open"

	"github.com/llehouerou/folio/internal/errmsg"
	"github.com/llehouerou/folio/internal/keymap"
	"github.com/llehouerou/folio/internal/thumbs"
	"github.com/llehouerou/folio/internal/zoom"
)

// Update handles image loads, the click timer and mouse input.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case thumbs.LoadedMsg:
		if msg.Kind != thumbs.KindSource || !m.pending[msg.ID] {
			return nil
		}
		delete(m.pending, msg.ID)
		m.images[msg.ID] = msg.Image
		m.refresh()

	case thumbs.LoadFailedMsg:
		if msg.Kind != thumbs.KindSource || !m.pending[msg.ID] {
			return nil
		}
		delete(m.pending, msg.ID)
		m.failed[msg.ID] = msg.Err
		log.Printf("lightbox: %s", errmsg.FormatWith(errmsg.OpImageLoad, msg.ID, msg.Err))
		m.refresh()

	case clickMsg:
		if msg.gen != m.clickGen || m.clickAt == nil {
			return nil
		}
		at := *m.clickAt
		m.clickAt = nil
		m.nav.Zoom().ClickToggleZoom(at.X, at.Y)
		m.refresh()

	case statusMsg:
		m.status, m.statusErr = msg.text, msg.err

	case tea.MouseMsg:
		if !m.nav.IsOpen() {
			return nil
		}
		return m.handleMouse(msg)
	}
	return nil
}

// HandleAction runs a viewer action.
func (m *Model) HandleAction(a keymap.Action) tea.Cmd {
	if !m.nav.IsOpen() {
		return nil
	}
	z := m.nav.Zoom()
	switch a { //nolint:exhaustive // only viewer actions
	case keymap.ActionClose:
		return m.Close()
	case keymap.ActionNext:
		return m.next()
	case keymap.ActionPrevious:
		return m.previous()
	case keymap.ActionZoomIn:
		if !m.currentFailed() {
			z.ZoomInStep()
		}
	case keymap.ActionZoomOut:
		if !m.currentFailed() {
			z.ZoomOutStep()
		}
	case keymap.ActionZoomReset:
		z.Reset()
	case keymap.ActionToggleInfo:
		m.info = !m.info
	case keymap.ActionCopyPath:
		cur, _ := m.nav.Current()
		return copyPath(cur.Path)
	case keymap.ActionOpenFile:
		cur, _ := m.nav.Current()
		return openFile(cur.Path)
	default:
		return nil
	}
	m.refresh()
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	x, y := msg.X, msg.Y
	z := m.nav.Zoom()
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button { //nolint:exhaustive // only wheel and left button
		case tea.MouseButtonWheelUp:
			return m.wheel(1, x, y)
		case tea.MouseButtonWheelDown:
			return m.wheel(-1, x, y)
		case tea.MouseButtonLeft:
			m.pressed, m.pressMoved = true, false
			if m.box.contains(x, y) && !m.currentFailed() {
				z.DragStart(float64(x), float64(y))
			}
		}
	case tea.MouseActionMotion:
		if m.pressed && z.DragMove(float64(x), float64(y)) {
			m.pressMoved = true
			m.refresh()
		}
	case tea.MouseActionRelease:
		if !m.pressed {
			return nil
		}
		m.pressed = false
		z.DragEnd()
		if m.pressMoved {
			return nil
		}
		return m.click(x, y)
	}
	return nil
}

// click toggles zoom about the pointer. The first click waits for the
// double click window; a second click inside it zooms further instead.
// Clicking the backdrop closes the lightbox; clicks on an error placeholder
// do nothing.
func (m *Model) click(x, y int) tea.Cmd {
	if !m.box.contains(x, y) {
		if m.box.w == 0 {
			return nil
		}
		return m.Close()
	}
	if m.currentFailed() {
		return nil
	}
	at := m.percent(x, y)
	if m.clickAt != nil {
		m.cancelClick()
		m.nav.Zoom().DoubleClickZoom(at.X, at.Y)
		m.refresh()
		return nil
	}
	m.clickAt = &at
	m.clickGen++
	gen := m.clickGen
	return tea.Tick(m.opts.DoubleClick, func(time.Time) tea.Msg {
		return clickMsg{gen: gen}
	})
}

func (m *Model) cancelClick() {
	m.clickAt = nil
	m.clickGen++
}

func (m *Model) wheel(sign, x, y int) tea.Cmd {
	if !m.box.contains(x, y) || m.currentFailed() {
		return nil
	}
	at := m.percent(x, y)
	m.nav.Zoom().Wheel(sign, at.X, at.Y)
	m.refresh()
	return nil
}

// percent converts a cell inside the image box to box percentages.
func (m Model) percent(x, y int) zoom.Point {
	return zoom.Point{
		X: (float64(x-m.box.x) + 0.5) / float64(m.box.w) * 100,
		Y: (float64(y-m.box.y) + 0.5) / float64(m.box.h) * 100,
	}
}

var errNoPath = errors.New("photo has no file")

func copyPath(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return statusMsg{text: errmsg.Format(errmsg.OpCopyPath, errNoPath), err: true}
		}
		if err := clipboard.WriteAll(path); err != nil {
			return statusMsg{text: errmsg.Format(errmsg.OpCopyPath, err), err: true}
		}
		return statusMsg{text: "Copied " + path}
	}
}

func openFile(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return statusMsg{text: errmsg.Format(errmsg.OpOpenExternal, errNoPath), err: true}
		}
		if err := open.Start(path); err != nil {
			return statusMsg{text: errmsg.Format(errmsg.OpOpenExternal, err), err: true}
		}
		return statusMsg{text: "Opened in system viewer"}
	}
}
