// Package confirm provides a confirmation popup with yes/no or multiple
// options, the last of which always cancels.
package confirm

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/folio/internal/ui"
	"github.com/llehouerou/folio/internal/ui/popup"
	"github.com/llehouerou/folio/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// Model is a confirmation popup.
type Model struct {
	ui.Base
	title    string
	message  string
	context  any
	active   bool
	options  []string
	selected int
}

// New creates a new confirmation model.
func New() Model {
	return Model{}
}

// Show displays the popup in yes/no mode.
func (m *Model) Show(title, message string, context any, width, height int) {
	m.ShowWithOptions(title, message, nil, context, width, height)
}

// ShowWithOptions displays the popup with a list of options. The last
// option is treated as cancel.
func (m *Model) ShowWithOptions(title, message string, options []string, context any, width, height int) {
	m.title = title
	m.message = message
	m.context = context
	m.options = options
	m.selected = 0
	m.active = true
	m.SetSize(width, height)
}

// Reset clears the popup state.
func (m *Model) Reset() {
	*m = Model{Base: m.Base}
}

// Active reports whether the popup is shown.
func (m Model) Active() bool {
	return m.active
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !m.active || !ok {
		return m, nil
	}
	if len(m.options) > 0 {
		return m, m.handleOptionKey(keyMsg.String())
	}
	return m, m.handleYesNoKey(keyMsg.String())
}

func (m *Model) handleOptionKey(key string) tea.Cmd {
	last := len(m.options) - 1
	switch key {
	case "up", "k":
		m.selected = max(m.selected-1, 0)
	case "down", "j":
		m.selected = min(m.selected+1, last)
	case "enter":
		return m.finish(m.selected < last, m.selected)
	case "esc":
		return m.finish(false, last)
	}
	return nil
}

func (m *Model) handleYesNoKey(key string) tea.Cmd {
	switch key {
	case "enter", "y", "Y":
		return m.finish(true, 0)
	case "esc", "n", "N":
		return m.finish(false, 0)
	}
	return nil
}

func (m *Model) finish(confirmed bool, option int) tea.Cmd {
	m.active = false
	res := Result{Confirmed: confirmed, Context: m.context, SelectedOption: option}
	return func() tea.Msg { return ActionMsg(res) }
}

// View implements popup.Popup.
func (m *Model) View() string {
	if !m.active || m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	s := styles.T().S()

	var b strings.Builder
	b.WriteString(s.Title.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(s.Base.Render(m.message))
	b.WriteString("\n\n")

	if len(m.options) == 0 {
		b.WriteString(s.Subtle.Render("enter/y confirm · esc/n cancel"))
		return b.String()
	}

	lines := make([]string, len(m.options))
	for i, opt := range m.options {
		if i == m.selected {
			lines[i] = s.Active.Render("> " + opt)
		} else {
			lines[i] = s.Muted.Render("  " + opt)
		}
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, lines...))
	b.WriteString("\n\n")
	b.WriteString(s.Subtle.Render("↑↓/jk navigate · enter select"))
	return b.String()
}
