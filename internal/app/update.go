package app

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/app/popupctl"
	"github.com/llehouerou/folio/internal/errmsg"
	"github.com/llehouerou/folio/internal/importer"
	"github.com/llehouerou/folio/internal/notify"
	"github.com/llehouerou/folio/internal/state"
	"github.com/llehouerou/folio/internal/ui/action"
	"github.com/llehouerou/folio/internal/ui/dashboard"
	"github.com/llehouerou/folio/internal/ui/gallery"
	"github.com/llehouerou/folio/internal/ui/headerbar"
	"github.com/llehouerou/folio/internal/ui/lightbox"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The lightbox cleanup is written by exactly one frame.
	m.cleanup = ""

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case gallery.OpenMsg:
		return m, m.openLightbox(msg)

	case lightbox.CloseMsg:
		m.cleanup = msg.Cleanup
		m.Gallery.Select(msg.ID)
		m.persist()
		return m, nil

	case gallery.CategoryChangedMsg:
		m.persist()
		return m, nil

	case dashboard.EditRequest:
		return m, m.showEdit(msg)

	case dashboard.DeleteRequest:
		return m, m.showDelete(msg)

	case dashboard.ImportRequest:
		return m, m.showImport(msg)

	case action.Msg:
		return m, m.handleAction(msg)

	case WatchEventMsg:
		return m, m.handleWatchEvent(msg.Event)

	case clearStatusMsg:
		if msg.gen == m.statusGen {
			m.status, m.statusErr = "", false
		}
		return m, nil

	case StderrMsg:
		log.Printf("stderr: %s", msg.Line)
		return m, WatchStderr()
	}

	cmd := tea.Batch(
		m.Gallery.Update(msg),
		m.Lightbox.Update(msg),
		m.Dashboard.Update(msg),
		m.Popups.Update(msg),
	)
	m.restoreSelection()
	return m, cmd
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	bodyH := max(msg.Height-headerbar.Height, 0)

	cmd := m.Gallery.Resize(msg.Width, bodyH)
	m.Lightbox.Resize(msg.Width, bodyH)
	m.Dashboard.Resize(msg.Width, bodyH)
	m.Popups.SetSize(msg.Width, msg.Height)
	m.restoreSelection()
	return m, cmd
}

// handleMouse routes clicks on the header to the tabs and everything else to
// the active view, in view coordinates.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.restoreID = ""
	if m.Popups.ActivePopup() != popupctl.None {
		return m, nil
	}

	if msg.Y < headerbar.Height {
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		view, ok := headerbar.TabAt(msg.X)
		if !ok {
			return m, nil
		}
		return m, m.switchView(view)
	}
	msg.Y -= headerbar.Height

	var cmd tea.Cmd
	switch {
	case m.Lightbox.IsOpen():
		cmd = m.Lightbox.Update(msg)
	case m.view == state.ViewDashboard:
		cmd = m.Dashboard.Update(msg)
	case !m.lock.locked:
		cmd = m.Gallery.Update(msg)
	}
	m.persist()
	return m, cmd
}

func (m *Model) openLightbox(msg gallery.OpenMsg) tea.Cmd {
	cmd, err := m.Lightbox.Open(msg.Items, msg.ID)
	if err != nil {
		text := errmsg.Format(errmsg.OpViewerOpen, err)
		log.Printf("app: %s", text)
		m.Popups.ShowError(text)
		return nil
	}
	m.persist()
	return cmd
}

// switchView shows view, closing the lightbox first.
func (m *Model) switchView(view string) tea.Cmd {
	if view == m.view && !m.Lightbox.IsOpen() {
		return nil
	}
	cmd := m.Lightbox.Close()
	m.view = view
	m.persist()
	return cmd
}

// restoreSelection selects the photo of the last session once the gallery
// has revealed it.
func (m *Model) restoreSelection() {
	if m.restoreID != "" && m.Gallery.Select(m.restoreID) {
		m.restoreID = ""
	}
}

func (m *Model) handleWatchEvent(ev importer.WatchEvent) tea.Cmd {
	failed := ev.Err != nil
	var text string
	if failed {
		text = errmsg.Format(errmsg.OpImportWatch, ev.Err)
		log.Printf("app: %s", text)
	} else {
		text = watchSummary(ev)
	}
	return tea.Batch(
		m.setStatus(text, failed),
		m.notify(text, failed),
		m.watchLibrary(),
	)
}

func watchSummary(ev importer.WatchEvent) string {
	r := ev.Result
	if len(r.Added) == 0 && len(r.Failed) == 0 && ev.Removed > 0 {
		return fmt.Sprintf("Removed %d missing photo(s)", ev.Removed)
	}
	s := r.Summary()
	if ev.Removed > 0 {
		s += fmt.Sprintf(", %d removed", ev.Removed)
	}
	return s
}

// setStatus shows text in the header for a while.
func (m *Model) setStatus(text string, failed bool) tea.Cmd {
	m.status, m.statusErr = text, failed
	m.statusGen++
	return clearStatusAfter(m.statusGen)
}

func (m Model) notify(text string, failed bool) tea.Cmd {
	if !m.notifier.Enabled() || text == "" {
		return nil
	}
	n := m.notifier
	return func() tea.Msg {
		urgency := notify.UrgencyNormal
		if failed {
			urgency = notify.UrgencyCritical
		}
		if err := n.Send("Folio", text, "", urgency); err != nil {
			log.Printf("app: notification: %v", err)
		}
		return nil
	}
}
