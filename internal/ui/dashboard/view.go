package dashboard

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/folio/internal/errmsg"
	"github.com/llehouerou/folio/internal/photo"
	"github.com/llehouerou/folio/internal/ui/render"
	"github.com/llehouerou/folio/internal/ui/styles"
)

const hints = "f feature · h hide · c category · e title · E description · d delete · i import · r reload"

// Column widths, flags and title excluded.
const (
	colCategory = 11
	colSize     = 12
	colBytes    = 9
	colAdded    = 15
)

// View renders the header, the photo table and the status line.
func (m *Model) View() string {
	w, h := m.Size()
	if w <= 0 || h <= 0 {
		return ""
	}
	s := styles.T().S()
	lines := make([]string, 0, h)
	lines = append(lines, m.header(w), s.Subtle.Render(m.columns("", "Title", "Category", "Size", "File", "Added", w)))

	height := m.listHeight()
	switch {
	case m.err != nil:
		lines = append(lines, s.Error.Render(render.Truncate(errmsg.Format(errmsg.OpGalleryLoad, m.err), w)))
	case !m.loaded:
		lines = append(lines, s.Muted.Render("Loading catalogue…"))
	case len(m.items) == 0:
		lines = append(lines, s.Muted.Render("No photos yet · press i to import a directory"))
	default:
		start, end := m.cursor.VisibleRange(len(m.items), height)
		for i := start; i < end; i++ {
			lines = append(lines, m.row(m.items[i], i == m.cursor.Pos(), w))
		}
	}
	for len(lines) < h-1 {
		lines = append(lines, "")
	}
	lines = append(lines[:h-1], m.statusLine(w))
	return strings.Join(lines, "\n")
}

func (m Model) header(width int) string {
	s := styles.T().S()
	var hidden, featured int
	for _, it := range m.items {
		if it.Hidden {
			hidden++
		}
		if it.Featured {
			featured++
		}
	}
	counts := fmt.Sprintf("%s photos · %d featured · %d hidden",
		humanize.Comma(int64(len(m.items))), featured, hidden)
	return render.Row(s.Title.Render("Catalogue"), s.Muted.Render(counts), width)
}

func (m Model) row(it photo.Item, selected bool, width int) string {
	s := styles.T().S()
	flags := " "
	if it.Featured {
		flags = "★"
	}
	if it.Hidden {
		flags += "◌"
	} else {
		flags += " "
	}

	size := ""
	if it.Width > 0 && it.Height > 0 {
		size = fmt.Sprintf("%d×%d", it.Width, it.Height)
	}
	bytes := ""
	if it.Size > 0 {
		bytes = humanize.Bytes(uint64(it.Size)) //nolint:gosec // size is positive
	}
	added := ""
	if !it.CreatedAt.IsZero() {
		added = humanize.RelTime(it.CreatedAt, m.now(), "ago", "from now")
	}

	line := m.columns(flags, it.DisplayTitle(), photo.NormalizeCategory(it.Category), size, bytes, added, width)
	switch {
	case selected:
		return s.Cursor.Render(line)
	case it.Hidden:
		return s.Muted.Render(line)
	case it.Featured:
		return s.Featured.Render(line)
	}
	return s.Base.Render(line)
}

// columns lays out one table row. The title takes the width the fixed
// columns leave.
func (m Model) columns(flags, title, category, size, bytes, added string, width int) string {
	fixed := 3 + colCategory + colSize + colBytes + colAdded
	titleW := max(width-fixed, 8)
	return render.TruncateAndPad(flags, 3) +
		render.TruncateAndPad(render.Sanitize(title), titleW) +
		render.TruncateAndPad(category, colCategory) +
		render.TruncateAndPad(size, colSize) +
		render.TruncateAndPad(bytes, colBytes) +
		render.Truncate(added, colAdded)
}

func (m Model) statusLine(width int) string {
	s := styles.T().S()
	switch {
	case m.importing:
		p := m.progress
		text := "Importing " + m.importDir
		if p.Total > 0 {
			text = fmt.Sprintf("Importing %d/%d %s", p.Current, p.Total, p.CurrentFile)
		} else if p.Phase != "" {
			text += " (" + p.Phase + ")"
		}
		return m.spin.View() + " " + s.Muted.Render(render.Truncate(text, max(width-2, 0)))
	case m.status != "":
		style := s.Success
		if m.statusErr {
			style = s.Error
		}
		return style.Render(render.Truncate(m.status, width))
	}
	return s.Subtle.Render(render.Truncate(hints, width))
}
