package masonry

import (
	"cmp"
	"slices"
)

// Breakpoint maps viewports up to MaxWidth (inclusive) to a column count.
type Breakpoint struct {
	MaxWidth float64 `koanf:"max_width"`
	Columns  int     `koanf:"columns"`
}

// Breakpoints selects a column count from a viewport width.
type Breakpoints struct {
	Steps   []Breakpoint
	Default int // used above the widest step
}

// DefaultBreakpoints are expressed in pixels: <=640 one column, <=1024 two,
// <=1536 three, four above.
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{
		Steps: []Breakpoint{
			{MaxWidth: 640, Columns: 1},
			{MaxWidth: 1024, Columns: 2},
			{MaxWidth: 1536, Columns: 3},
		},
		Default: 4,
	}
}

// ColumnsFor returns the column count for a viewport width. Steps are
// evaluated narrowest first regardless of their declared order. The result
// is never below 1.
func (b Breakpoints) ColumnsFor(width float64) int {
	steps := slices.Clone(b.Steps)
	slices.SortFunc(steps, func(x, y Breakpoint) int { return cmp.Compare(x.MaxWidth, y.MaxWidth) })
	for _, s := range steps {
		if width <= s.MaxWidth {
			return max(s.Columns, 1)
		}
	}
	return max(b.Default, 1)
}
