// Package headerbar renders the one-line header with the logo and the view
// tabs.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/folio/internal/ui/render"
	"github.com/llehouerou/folio/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// View names, as shown and persisted.
const (
	ViewGallery   = "gallery"
	ViewDashboard = "dashboard"
)

type tab struct {
	key  string
	name string
	view string
}

var tabs = []tab{
	{"F1", "Gallery", ViewGallery},
	{"F2", "Dashboard", ViewDashboard},
}

// Render returns the header for the current view. right is shown at the
// right edge, e.g. the photo count.
func Render(current string, width int, right string) string {
	if width < 20 {
		return ""
	}
	s := styles.T().S()

	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.view == current {
			parts = append(parts, s.Active.Render(t.key+" "+t.name))
		} else {
			parts = append(parts, s.Muted.Render(t.key)+" "+s.Base.Render(t.name))
		}
	}
	left := styles.Logo() + "  " + strings.Join(parts, s.Subtle.Render(" │ "))
	if lipgloss.Width(left)+lipgloss.Width(right)+1 > width {
		right = ""
	}
	return render.Row(left, s.Muted.Render(right), width)
}

// TabAt returns the view whose tab covers column x.
func TabAt(x int) (string, bool) {
	pos := lipgloss.Width(styles.Logo()) + 2
	for i, t := range tabs {
		if i > 0 {
			pos += 3
		}
		w := lipgloss.Width(t.key + " " + t.name)
		if x >= pos && x < pos+w {
			return t.view, true
		}
		pos += w
	}
	return "", false
}
