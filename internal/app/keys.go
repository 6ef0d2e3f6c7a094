package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/app/handler"
	"github.com/llehouerou/folio/internal/keymap"
	"github.com/llehouerou/folio/internal/state"
)

var resolvers = map[string]*keymap.Resolver{
	keymap.ContextGallery:   keymap.ForContext(keymap.ContextGallery),
	keymap.ContextViewer:    keymap.ForContext(keymap.ContextViewer),
	keymap.ContextDashboard: keymap.ForContext(keymap.ContextDashboard),
}

// keyContext returns the binding context of what has the keyboard.
func (m Model) keyContext() string {
	switch {
	case m.Lightbox.IsOpen():
		return keymap.ContextViewer
	case m.view == state.ViewDashboard:
		return keymap.ContextDashboard
	}
	return keymap.ContextGallery
}

// handleKey gives the key to the active popup, then resolves it in the
// current context and runs the first handler that takes the action.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.restoreID = ""
	key := msg.String()
	// ctrl+c quits even from a popup.
	if key != "ctrl+c" {
		if handled, cmd := m.Popups.HandleKey(msg); handled {
			return m, cmd
		}
	}

	a := resolvers[m.keyContext()].ResolveFocused(key, m.Popups.InputFocused())
	handled, cmd := handler.Chain(a, key,
		m.handleGlobal,
		m.handleViewer,
		m.handleGallery,
		m.handleDashboard,
	)
	if !handled {
		return m, nil
	}
	m.persist()
	return m, cmd
}

func (m *Model) handleGlobal(a keymap.Action, _ string) handler.Result {
	switch a { //nolint:exhaustive // only global actions
	case keymap.ActionQuit:
		m.persist()
		m.Gallery.Close()
		return handler.Handled(tea.Quit)
	case keymap.ActionHelp:
		return handler.Handled(m.Popups.ShowHelp([]string{keymap.ContextGlobal, m.keyContext()}))
	case keymap.ActionViewGallery:
		return handler.Handled(m.switchView(state.ViewGallery))
	case keymap.ActionViewDashboard:
		return handler.Handled(m.switchView(state.ViewDashboard))
	}
	return handler.NotHandled
}

func (m *Model) handleViewer(a keymap.Action, _ string) handler.Result {
	if !m.Lightbox.IsOpen() {
		return handler.NotHandled
	}
	return handler.Handled(m.Lightbox.HandleAction(a))
}

func (m *Model) handleGallery(a keymap.Action, key string) handler.Result {
	if m.view != state.ViewGallery {
		return handler.NotHandled
	}
	return handler.Handled(m.Gallery.HandleAction(a, key))
}

func (m *Model) handleDashboard(a keymap.Action, _ string) handler.Result {
	if m.view != state.ViewDashboard {
		return handler.NotHandled
	}
	return handler.Handled(m.Dashboard.HandleAction(a))
}
