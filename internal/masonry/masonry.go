// Package masonry balances an ordered sequence of items across columns.
//
// Items are placed greedily into the currently shortest column (lowest index
// on ties). Placement is stable: once an item has a column it keeps it until
// the column count changes, which triggers a full re-layout. Items whose real
// height is not yet known occupy an estimated height; Measure swaps the
// estimate for the real value without moving anything.
package masonry

import "slices"

// Defaults matching the gallery's behaviour.
const (
	DefaultGap             = 24
	DefaultEstimatedHeight = 200
)

// Options configures spacing and placeholder sizing.
type Options struct {
	Gap             float64 // vertical space between items of a column
	EstimatedHeight float64 // height used until an item is measured
}

// Entry is an item to place. A zero Height means "not known yet".
type Entry struct {
	ID     string
	Height float64
}

// Placed describes an item's position inside its column.
type Placed struct {
	ID       string
	Top      float64
	Height   float64
	Measured bool
}

// Balancer holds a column layout.
type Balancer struct {
	opts       Options
	columns    [][]string
	heights    []float64
	assignment map[string]int
	sizes      map[string]float64
	measured   map[string]bool
	order      []string // placement order, replayed on re-layout
}

// New creates an empty layout with n columns (at least 1).
func New(n int, opts Options) *Balancer {
	b := &Balancer{opts: opts}
	b.init(max(n, 1))
	b.sizes = make(map[string]float64)
	b.measured = make(map[string]bool)
	return b
}

func (b *Balancer) init(n int) {
	b.columns = make([][]string, n)
	b.heights = make([]float64, n)
	b.assignment = make(map[string]int)
	b.order = b.order[:0]
}

// ColumnCount returns the number of columns.
func (b *Balancer) ColumnCount() int {
	return len(b.columns)
}

// SetColumnCount changes the number of columns. When the count changes every
// placed item is laid out again from scratch, in its original order, before
// the call returns. Reports whether a re-layout happened.
func (b *Balancer) SetColumnCount(n int) bool {
	n = max(n, 1)
	if n == len(b.columns) {
		return false
	}
	order := slices.Clone(b.order)
	b.init(n)
	for _, id := range order {
		b.place(id)
	}
	return true
}

// Layout discards the current layout and places entries in order.
// Heights known from earlier Measure calls are kept for IDs that are laid
// out again without an explicit height.
func (b *Balancer) Layout(entries []Entry) {
	b.init(len(b.columns))
	sizes := make(map[string]float64, len(entries))
	measured := make(map[string]bool, len(entries))
	for _, e := range entries {
		switch {
		case e.Height > 0:
			sizes[e.ID] = e.Height
			measured[e.ID] = true
		case b.measured[e.ID]:
			sizes[e.ID] = b.sizes[e.ID]
			measured[e.ID] = true
		}
	}
	b.sizes = sizes
	b.measured = measured
	for _, e := range entries {
		if _, dup := b.assignment[e.ID]; dup {
			continue
		}
		b.place(e.ID)
	}
}

// Append places entries that are not laid out yet, keeping every existing
// assignment. It returns the column chosen for each new entry, in order.
func (b *Balancer) Append(entries []Entry) []int {
	var cols []int
	for _, e := range entries {
		if _, ok := b.assignment[e.ID]; ok {
			continue
		}
		if e.Height > 0 {
			b.sizes[e.ID] = e.Height
			b.measured[e.ID] = true
		}
		cols = append(cols, b.place(e.ID))
	}
	return cols
}

// Relayout re-places every item from scratch with the current column count
// and the best known heights.
func (b *Balancer) Relayout() {
	order := slices.Clone(b.order)
	b.init(len(b.columns))
	for _, id := range order {
		b.place(id)
	}
}

// Measure records the real height of a placed item and updates its column's
// height. The item stays in its column. Reports false for unknown IDs.
func (b *Balancer) Measure(id string, height float64) bool {
	col, ok := b.assignment[id]
	if !ok || height <= 0 {
		return false
	}
	b.sizes[id] = height
	b.measured[id] = true
	b.heights[col] = b.columnHeight(col)
	return true
}

func (b *Balancer) place(id string) int {
	col := b.shortest()
	b.columns[col] = append(b.columns[col], id)
	b.assignment[id] = col
	b.order = append(b.order, id)
	if len(b.columns[col]) > 1 {
		b.heights[col] += b.opts.Gap
	}
	b.heights[col] += b.heightOf(id)
	return col
}

func (b *Balancer) shortest() int {
	best := 0
	for i, h := range b.heights {
		if h < b.heights[best] {
			best = i
		}
	}
	return best
}

func (b *Balancer) heightOf(id string) float64 {
	if h, ok := b.sizes[id]; ok && h > 0 {
		return h
	}
	return b.opts.EstimatedHeight
}

func (b *Balancer) columnHeight(col int) float64 {
	var h float64
	for i, id := range b.columns[col] {
		if i > 0 {
			h += b.opts.Gap
		}
		h += b.heightOf(id)
	}
	return h
}

// Heights returns the bottom edge of every column.
func (b *Balancer) Heights() []float64 {
	return slices.Clone(b.heights)
}

// Columns returns the item IDs of every column in placement order.
func (b *Balancer) Columns() [][]string {
	out := make([][]string, len(b.columns))
	for i, c := range b.columns {
		out[i] = slices.Clone(c)
	}
	return out
}

// Column returns the positioned items of one column.
func (b *Balancer) Column(col int) []Placed {
	if col < 0 || col >= len(b.columns) {
		return nil
	}
	out := make([]Placed, 0, len(b.columns[col]))
	var top float64
	for i, id := range b.columns[col] {
		if i > 0 {
			top += b.opts.Gap
		}
		h := b.heightOf(id)
		out = append(out, Placed{ID: id, Top: top, Height: h, Measured: b.measured[id]})
		top += h
	}
	return out
}

// ColumnOf returns the column an item is assigned to.
func (b *Balancer) ColumnOf(id string) (int, bool) {
	col, ok := b.assignment[id]
	return col, ok
}

// Len returns the number of placed items.
func (b *Balancer) Len() int {
	return len(b.order)
}

// Order returns the item IDs in placement order.
func (b *Balancer) Order() []string {
	return slices.Clone(b.order)
}

// MaxHeight returns the tallest column's height.
func (b *Balancer) MaxHeight() float64 {
	return slices.Max(b.heights)
}

// Options returns the spacing configuration.
func (b *Balancer) Options() Options {
	return b.opts
}
