package gallery

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/masonry"
	"github.com/llehouerou/folio/internal/ui/layout"
)

// minTileRows keeps room for at least one image row and the caption.
const minTileRows = 2

// span converts a placed item to grid rows.
func (m Model) span(p masonry.Placed) (top, rows int) {
	cell := float64(m.cellH)
	top = int(math.Round(p.Top / cell))
	bottom := int(math.Round((p.Top + p.Height) / cell))
	return top, max(bottom-top, minTileRows)
}

// contentRows is the height of the tallest column in rows.
func (m Model) contentRows() int {
	return layout.Rows(m.grid.MaxHeight(), m.cellH)
}

// totalRows adds a blank row and the footer below the columns.
func (m Model) totalRows() int {
	return m.contentRows() + 2
}

func (m Model) maxScroll() int {
	return max(m.totalRows()-m.gridHeight(), 0)
}

func (m *Model) clampScroll() {
	m.scroll = min(max(m.scroll, 0), m.maxScroll())
}

// placed finds the selected item inside its column.
func (m Model) placed(id string) (col, idx int, items []masonry.Placed, ok bool) {
	col, ok = m.grid.ColumnOf(id)
	if !ok {
		return 0, 0, nil, false
	}
	items = m.grid.Column(col)
	for i, p := range items {
		if p.ID == id {
			return col, i, items, true
		}
	}
	return 0, 0, nil, false
}

// ensureVisible scrolls the selected tile into view.
func (m *Model) ensureVisible() {
	_, idx, items, ok := m.placed(m.selected)
	if !ok {
		m.clampScroll()
		return
	}
	top, rows := m.span(items[idx])
	h := m.gridHeight()
	if top+rows > m.scroll+h {
		m.scroll = top + rows - h
	}
	if top < m.scroll {
		m.scroll = top
	}
	m.clampScroll()
}

// selectID moves the selection and samples the scroll position if it moved.
func (m *Model) selectID(id string) tea.Cmd {
	if id == "" {
		return nil
	}
	m.selected = id
	before := m.scroll
	m.ensureVisible()
	if m.scroll == before {
		return nil
	}
	return m.sample()
}

func (m *Model) scrollBy(delta int) tea.Cmd {
	before := m.scroll
	m.scroll += delta
	m.clampScroll()
	if m.scroll == before {
		return nil
	}
	return m.sample()
}

func (m *Model) moveVertical(delta int) tea.Cmd {
	_, idx, items, ok := m.placed(m.selected)
	if !ok {
		return m.selectID(m.first())
	}
	idx = min(max(idx+delta, 0), len(items)-1)
	cmd := m.selectID(items[idx].ID)
	if cmd == nil && idx == len(items)-1 && delta > 0 {
		// Already on the last tile: scroll on so the reveal can trigger.
		return m.scrollBy(delta)
	}
	return cmd
}

// moveHorizontal picks the tile of the adjacent column whose vertical center
// is closest to the selected one's.
func (m *Model) moveHorizontal(delta int) tea.Cmd {
	col, idx, items, ok := m.placed(m.selected)
	if !ok {
		return m.selectID(m.first())
	}
	cur := items[idx]
	for c := col + delta; c >= 0 && c < m.grid.ColumnCount(); c += delta {
		if id, ok := nearest(m.grid.Column(c), cur.Top+cur.Height/2); ok {
			return m.selectID(id)
		}
	}
	return nil
}

// page moves half a viewport within the selected column.
func (m *Model) page(delta int) tea.Cmd {
	half := max(m.gridHeight()/2, 1)
	col, idx, items, ok := m.placed(m.selected)
	if !ok {
		return m.scrollBy(delta * half)
	}
	cur := items[idx]
	target := cur.Top + cur.Height/2 + float64(delta*half*m.cellH)
	id, _ := nearest(m.grid.Column(col), target)
	if id == m.selected {
		return m.scrollBy(delta * half)
	}
	return m.selectID(id)
}

func (m *Model) jump(end bool) tea.Cmd {
	order := m.grid.Order()
	if len(order) == 0 {
		return nil
	}
	if end {
		return m.selectID(order[len(order)-1])
	}
	return m.selectID(order[0])
}

func nearest(items []masonry.Placed, y float64) (string, bool) {
	best, bestDist := "", math.Inf(1)
	for _, p := range items {
		if d := math.Abs(p.Top + p.Height/2 - y); d < bestDist {
			best, bestDist = p.ID, d
		}
	}
	return best, best != ""
}

// tileAt returns the tile under cell x of grid row row.
func (m Model) tileAt(x, row int) (string, bool) {
	if m.tileCols <= 0 || x < 0 {
		return "", false
	}
	col := x / (m.tileCols + layout.ColumnGutter)
	if col >= m.grid.ColumnCount() || x-layout.ColumnX(col, m.tileCols) >= m.tileCols {
		return "", false
	}
	for _, p := range m.grid.Column(col) {
		top, rows := m.span(p)
		if row >= top && row < top+rows {
			return p.ID, true
		}
	}
	return "", false
}
