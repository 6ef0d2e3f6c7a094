package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns a rounded panel, highlighted when focused.
func PanelStyle(focused bool) lipgloss.Style {
	t := T()
	color := t.Border
	if focused {
		color = t.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color)
}
