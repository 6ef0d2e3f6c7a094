package app

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/folio/internal/app/popupctl"
	"github.com/llehouerou/folio/internal/state"
	"github.com/llehouerou/folio/internal/ui/headerbar"
)

// View renders the header, the active view and the popups. Graphics for the
// lightbox go around the text: the upload before it and the placement
// after it.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return m.cleanup
	}

	right := m.status
	if right == "" {
		right = humanize.Comma(int64(len(m.Gallery.Items()))) + " photos"
	}
	header := headerbar.Render(m.view, m.width, right)

	bodyH := max(m.height-headerbar.Height, 0)
	var body string
	switch {
	case m.Lightbox.IsOpen():
		body = m.Lightbox.View()
	case m.view == state.ViewDashboard:
		body = m.Dashboard.View()
	default:
		body = m.Gallery.View()
	}

	out := header + "\n" + enforceHeight(body, bodyH)
	popupShown := m.Popups.ActivePopup() != popupctl.None
	if popupShown {
		out = m.Popups.RenderOverlay(out)
	}

	if m.Lightbox.IsOpen() && !popupShown {
		out = m.Lightbox.Transmit() + out + m.Lightbox.Placement(headerbar.Height+1, 1)
	}
	return m.cleanup + out
}

// enforceHeight pads or truncates s to exactly height lines.
func enforceHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
