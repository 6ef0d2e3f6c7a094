// Package categorybar renders the gallery's category filter tabs.
package categorybar

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/folio/internal/photo"
	"github.com/llehouerou/folio/internal/ui/render"
	"github.com/llehouerou/folio/internal/ui/styles"
)

// Height is the fixed height of the bar.
const Height = 1

// Model tracks the selected category.
type Model struct {
	index int
}

// New selects the category with the given ID, or "all" when unknown.
func New(category string) Model {
	var m Model
	m.Select(category)
	return m
}

// Selected returns the ID of the selected category.
func (m Model) Selected() string {
	return photo.Categories[m.index].ID
}

// Select picks a category by ID. Reports whether the selection changed.
func (m *Model) Select(category string) bool {
	for i, c := range photo.Categories {
		if strings.EqualFold(c.ID, category) {
			return m.set(i)
		}
	}
	return m.set(0)
}

// Next selects the following category, wrapping.
func (m *Model) Next() bool {
	return m.set((m.index + 1) % len(photo.Categories))
}

// Prev selects the preceding category, wrapping.
func (m *Model) Prev() bool {
	n := len(photo.Categories)
	return m.set((m.index - 1 + n) % n)
}

// Pick selects by the digit key shown next to each tab ("1" is All).
func (m *Model) Pick(key string) bool {
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 || n > len(photo.Categories) {
		return false
	}
	return m.set(n - 1)
}

func (m *Model) set(i int) bool {
	changed := i != m.index
	m.index = i
	return changed
}

// View renders the tabs centered in width. Counts, when given, are shown
// next to each category name.
func (m Model) View(width int, counts map[string]int) string {
	s := styles.T().S()
	labels := m.labels(counts)
	parts := make([]string, len(labels))
	for i, label := range labels {
		if i == m.index {
			parts[i] = s.Active.Render(label)
		} else {
			parts[i] = s.Muted.Render(label)
		}
	}
	return render.Center(strings.Join(parts, s.Subtle.Render(separator)), width)
}

// TabAt returns the category under column x of a bar rendered with View.
func (m Model) TabAt(x, width int, counts map[string]int) (string, bool) {
	labels := m.labels(counts)
	total := len(separator) * (len(labels) - 1)
	for _, l := range labels {
		total += runewidth.StringWidth(l)
	}
	pos := max((width-total)/2, 0)
	for i, l := range labels {
		w := runewidth.StringWidth(l)
		if x >= pos && x < pos+w {
			return photo.Categories[i].ID, true
		}
		pos += w + len(separator)
	}
	return "", false
}

const separator = "·"

func (m Model) labels(counts map[string]int) []string {
	labels := make([]string, len(photo.Categories))
	for i, c := range photo.Categories {
		label := strconv.Itoa(i+1) + " " + c.Name
		if n, ok := counts[c.ID]; ok {
			label += " " + strconv.Itoa(n)
		}
		if i == m.index {
			labels[i] = "[" + label + "]"
		} else {
			labels[i] = " " + label + " "
		}
	}
	return labels
}

// Counts tallies visible photos per category, including the "all" total.
func Counts(items []photo.Item) map[string]int {
	counts := map[string]int{photo.CategoryAll: 0}
	for _, it := range items {
		if it.Hidden {
			continue
		}
		counts[photo.CategoryAll]++
		counts[photo.NormalizeCategory(it.Category)]++
	}
	return counts
}
