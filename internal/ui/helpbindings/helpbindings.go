// Package helpbindings lists the key bindings of the current view in a
// scrollable popup.
package helpbindings

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/folio/internal/keymap"
	"github.com/llehouerou/folio/internal/ui"
	"github.com/llehouerou/folio/internal/ui/popup"
	"github.com/llehouerou/folio/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// sections in display order.
var sections = []struct{ context, label string }{
	{keymap.ContextGlobal, "Global"},
	{keymap.ContextGallery, "Gallery"},
	{keymap.ContextViewer, "Lightbox"},
	{keymap.ContextDashboard, "Dashboard"},
}

// chrome is the height taken by the title, the footer and the frame.
const chrome = 10

type Model struct {
	ui.Base
	lines        []string
	scrollOffset int
}

func New() Model {
	return Model{}
}

// SetContexts rebuilds the listing for the given keymap contexts.
func (m *Model) SetContexts(contexts []string) {
	var groups [][]keymap.Binding
	var labels []string
	for _, sec := range sections {
		if slices.Contains(contexts, sec.context) {
			groups = append(groups, keymap.ByContext(sec.context))
			labels = append(labels, sec.label)
		}
	}
	m.lines = layout(labels, groups)
	m.scrollOffset = 0
}

func layout(labels []string, groups [][]keymap.Binding) []string {
	s := styles.T().S()
	keyW := 0
	for _, g := range groups {
		for _, b := range g {
			keyW = max(keyW, lipgloss.Width(keyLabel(b.Keys)))
		}
	}

	var lines []string
	for i, g := range groups {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines,
			s.Featured.Bold(true).Render(labels[i]),
			s.Subtle.Render(strings.Repeat("─", keyW+20)))
		for _, b := range g {
			keys := keyLabel(b.Keys)
			pad := strings.Repeat(" ", keyW-lipgloss.Width(keys))
			lines = append(lines, s.Active.Render(keys+pad)+"  "+s.Base.Render(b.Description))
		}
	}

	// Pad to the widest line so the popup keeps its width while scrolling.
	width := 0
	for _, l := range lines {
		width = max(width, lipgloss.Width(l))
	}
	for i, l := range lines {
		lines[i] = l + strings.Repeat(" ", width-lipgloss.Width(l))
	}
	return lines
}

// keyLabel joins keys for display, spelling out the space bar.
func keyLabel(keys []string) string {
	var labels []string
	for _, k := range keys {
		if k == " " {
			k = "space"
		}
		if !slices.Contains(labels, k) {
			labels = append(labels, k)
		}
	}
	return strings.Join(labels, ", ")
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "?", "esc", "q":
		return m, func() tea.Msg { return ActionMsg(Close{}) }
	case "j", "down":
		m.scrollOffset = min(m.scrollOffset+1, m.maxScroll())
	case "k", "up":
		m.scrollOffset = max(m.scrollOffset-1, 0)
	}
	return m, nil
}

func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	s := styles.T().S()
	start := min(m.scrollOffset, len(m.lines))
	end := min(start+m.visibleHeight(), len(m.lines))

	footer := "?/esc close"
	if m.maxScroll() > 0 {
		footer = "j/k scroll · " + footer
	}
	return s.Title.Render("Help") + "\n\n" +
		strings.Join(m.lines[start:end], "\n") + "\n\n" +
		s.Subtle.Render(footer)
}

func (m Model) visibleHeight() int {
	return max(m.Height()-chrome, 5)
}

func (m Model) maxScroll() int {
	return max(len(m.lines)-m.visibleHeight(), 0)
}
