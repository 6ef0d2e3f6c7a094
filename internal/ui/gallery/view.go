package gallery

import (
	"strings"

	"github.com/llehouerou/folio/internal/masonry"
	"github.com/llehouerou/folio/internal/thumbs"
	"github.com/llehouerou/folio/internal/ui/layout"
	"github.com/llehouerou/folio/internal/ui/render"
	"github.com/llehouerou/folio/internal/ui/styles"
)

// View renders the category bar, the hero and the visible part of the grid.
func (m *Model) View() string {
	w := m.Width()
	if w <= 0 || m.Height() <= 0 {
		return ""
	}
	lines := []string{m.bar.View(w, m.counts)}
	if m.heroHeight() > 0 {
		lines = append(lines, m.hero.View())
	}
	lines = append(lines, m.gridView()...)
	return strings.Join(lines, "\n")
}

func (m *Model) gridView() []string {
	h, w := m.gridHeight(), m.Width()
	if h == 0 {
		return nil
	}
	s := styles.T().S()
	lines := make([]string, h)
	for i := range lines {
		lines[i] = strings.Repeat(" ", w)
	}

	switch {
	case m.err != nil:
		lines[h/2] = render.Center(s.Error.Render("Could not load photos: "+m.err.Error()), w)
		return lines
	case !m.loaded:
		lines[h/2] = render.Center(s.Muted.Render("Loading portfolio…"), w)
		return lines
	case len(m.items) == 0:
		lines[h/2] = render.Center(s.Muted.Render("No photos in this category"), w)
		return lines
	}

	cols := m.grid.ColumnCount()
	cells := make([][]string, h)
	for i := range cells {
		cells[i] = make([]string, cols)
	}
	for c := range cols {
		for _, p := range m.grid.Column(c) {
			top, rows := m.span(p)
			if top+rows <= m.scroll || top >= m.scroll+h {
				continue
			}
			for i, line := range m.tileLines(p, rows) {
				if r := top + i - m.scroll; r >= 0 && r < h {
					cells[r][c] = line
				}
			}
		}
	}

	blank := strings.Repeat(" ", m.tileCols)
	gutter := strings.Repeat(" ", layout.ColumnGutter)
	for r := range h {
		row := make([]string, cols)
		for c, cell := range cells[r] {
			if cell == "" {
				cell = blank
			}
			row[c] = cell
		}
		lines[r] = strings.Join(row, gutter)
	}

	if r := m.contentRows() + 1 - m.scroll; r >= 0 && r < h {
		lines[r] = render.Center(m.footer(), w)
	}
	return lines
}

func (m *Model) footer() string {
	s := styles.T().S()
	switch {
	case m.pager.Loading():
		return s.Muted.Render(m.spin.View() + " loading more photos")
	case m.pager.Exhausted():
		return s.Subtle.Render("· end of portfolio ·")
	}
	return ""
}

// tileLines renders one tile as rows lines of tileCols cells: the image
// area and a caption.
func (m *Model) tileLines(p masonry.Placed, rows int) []string {
	s := styles.T().S()
	w := m.tileCols
	imgRows := rows - 1
	lines := make([]string, 0, rows)

	t := m.tiles[p.ID]
	switch {
	case t != nil && t.state == tileLoaded:
		if t.frame == nil || t.frameW != w || t.frameH != imgRows {
			t.frame = strings.Split(thumbs.RenderHalfBlocks(t.img, w, imgRows), "\n")
			t.frameW, t.frameH = w, imgRows
		}
		lines = append(lines, t.frame...)
	case t != nil && t.state == tileFailed:
		for i := range imgRows {
			if i == imgRows/2 {
				lines = append(lines, render.Center(s.Error.Render(render.Truncate("⚠ unavailable", w)), w))
				continue
			}
			lines = append(lines, strings.Repeat(" ", w))
		}
	default:
		fill := s.Skeleton.Render(strings.Repeat(" ", w))
		for range imgRows {
			lines = append(lines, fill)
		}
	}

	it := m.byID[p.ID]
	title := it.DisplayTitle()
	if it.Featured {
		title = "★ " + title
	}
	caption := render.TruncateAndPad(render.Sanitize(title), w)
	if p.ID == m.selected {
		caption = s.Cursor.Render(caption)
	} else {
		caption = s.Muted.Render(caption)
	}
	return append(lines, caption)
}
