package lightbox

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/folio/internal/photo"
	"github.com/llehouerou/folio/internal/ui/render"
	"github.com/llehouerou/folio/internal/ui/styles"
)

const hints = "←/→ browse · +/- zoom · 0 reset · i details · y copy path · o open · esc close"

// View renders the photo, its caption and the status line.
func (m *Model) View() string {
	cur, ok := m.nav.Current()
	w, h := m.Size()
	if !ok || w <= 0 || h <= 0 {
		return ""
	}
	s := styles.T().S()
	cols, rows := m.area()

	imgLines := m.imageLines(cur, cols, rows)
	body := strings.Join(imgLines, "\n")
	if cols < w {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.infoPanel(cur, w-cols, rows))
	}

	title := s.Title.Render(render.Truncate(cur.DisplayTitle(), max(w/2, 1)))
	pos := fmt.Sprintf("%d / %d", m.nav.Index()+1, m.nav.Len())
	if st := m.nav.Zoom().State(); st.Scale != 1 {
		pos += fmt.Sprintf(" · %d%%", int(st.Scale*100+0.5))
	}
	caption := render.Row(title, s.Muted.Render(pos), w)

	status := s.Subtle.Render(render.Truncate(hints, w))
	if m.status != "" {
		style := s.Success
		if m.statusErr {
			style = s.Error
		}
		status = style.Render(render.Truncate(m.status, w))
	}
	return body + "\n" + caption + "\n" + status
}

func (m *Model) imageLines(cur photo.Item, cols, rows int) []string {
	s := styles.T().S()
	lines := make([]string, rows)
	blank := strings.Repeat(" ", cols)
	for i := range lines {
		lines[i] = blank
	}
	if rows == 0 {
		return lines
	}

	if err := m.failed[cur.ID]; err != nil {
		lines[rows/2] = render.Center(s.Error.Render("⚠ image unavailable"), cols)
		if rows/2+1 < rows {
			lines[rows/2+1] = render.Center(s.Muted.Render(render.Truncate(err.Error(), cols)), cols)
		}
		return lines
	}
	if m.box.w == 0 {
		lines[rows/2] = render.Center(s.Muted.Render("Loading…"), cols)
		return lines
	}

	left := strings.Repeat(" ", m.box.x)
	right := strings.Repeat(" ", max(cols-m.box.x-m.box.w, 0))
	for i, cell := range strings.Split(m.renderer.Cells(), "\n") {
		if r := m.box.y + i; r < rows {
			lines[r] = left + cell + right
		}
	}
	return lines
}

// infoPanel renders the photo details next to the image.
func (m *Model) infoPanel(cur photo.Item, width, height int) string {
	s := styles.T().S()
	inner := max(width-4, 1)

	var b strings.Builder
	b.WriteString(s.Title.Render(render.Truncate(cur.DisplayTitle(), inner)))
	b.WriteString("\n")
	meta := []string{photo.NormalizeCategory(cur.Category)}
	if cur.Featured {
		meta = append(meta, s.Featured.Render("★ featured"))
	}
	b.WriteString(s.Muted.Render(strings.Join(meta, " · ")))
	b.WriteString("\n\n")

	if cur.Width > 0 && cur.Height > 0 {
		fmt.Fprintf(&b, "%d × %d\n", cur.Width, cur.Height)
	}
	if cur.Size > 0 {
		b.WriteString(humanize.Bytes(uint64(cur.Size)) + "\n") //nolint:gosec // size is positive
	}
	if !cur.CreatedAt.IsZero() {
		b.WriteString(s.Muted.Render("added "+humanize.Time(cur.CreatedAt)) + "\n")
	}
	if cur.Description != "" {
		b.WriteString("\n")
		b.WriteString(m.description(cur, inner))
	}

	return styles.PanelStyle(false).
		Width(width - 2).
		Height(max(height-2, 0)).
		MaxHeight(height).
		Padding(0, 1).
		Render(b.String())
}

// description renders the markdown description, cached per photo and width.
func (m *Model) description(cur photo.Item, width int) string {
	key := fmt.Sprintf("%s/%d", cur.ID, width)
	if out, ok := m.infoText[key]; ok {
		return out
	}
	out := render.Wrap(cur.Description, width)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if md, err := r.Render(cur.Description); err == nil {
			out = strings.Trim(md, "\n")
		}
	}
	m.infoText[key] = out
	return out
}
