// Package popup frames modal content and lays it over a base view.
package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/folio/internal/ui/styles"
)

// SizeConfig bounds a popup frame. With WidthPct set the frame takes that
// share of the screen, otherwise it fits its content.
type SizeConfig struct {
	WidthPct  int
	HeightPct int
	MaxWidth  int
}

var (
	SizeLarge = SizeConfig{WidthPct: 80, HeightPct: 70}
	SizeEdit  = SizeConfig{MaxWidth: 72}
	SizeAuto  = SizeConfig{}
)

// Frame border plus padding, per axis.
const (
	chromeW = 6
	chromeH = 4
	margin  = 4
)

// RenderBordered wraps content in the popup frame.
func RenderBordered(content string, screenW, screenH int, size SizeConfig) string {
	w, h := calculateDimensions(content, screenW, screenH, size)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border).
		Padding(1, 2).
		Width(w - 2).
		Height(h - 2).
		Render(content)
}

func calculateDimensions(content string, screenW, screenH int, size SizeConfig) (width, height int) {
	if size.WidthPct > 0 {
		return screenW * size.WidthPct / 100, screenH * size.HeightPct / 100
	}
	width = lipgloss.Width(content) + chromeW
	if size.MaxWidth > 0 {
		width = min(width, size.MaxWidth)
	}
	height = lipgloss.Height(content) + chromeH
	return min(width, screenW-margin), min(height, screenH-margin)
}

// Compose centers box over base, a width×height screen, and returns the
// result. Rows of base outside the box are kept as they are.
func Compose(base, box string, width, height int) string {
	rows := strings.Split(base, "\n")
	boxRows := strings.Split(strings.TrimRight(box, "\n"), "\n")
	boxW := lipgloss.Width(box)

	top := max((height-len(boxRows))/2, 0)
	left := max((width-boxW)/2, 0)
	for i, line := range boxRows {
		y := top + i
		if y >= len(rows) {
			break
		}
		rows[y] = splice(rows[y], line, left, boxW, width)
	}
	return strings.Join(rows, "\n")
}

// splice replaces columns [x, x+w) of row with cell, keeping the row width.
func splice(row, cell string, x, w, width int) string {
	if rw := ansi.StringWidth(row); rw < width {
		row += strings.Repeat(" ", width-rw)
	}
	if cw := ansi.StringWidth(cell); cw < w {
		cell += strings.Repeat(" ", w-cw)
	}
	// A wide rune straddling x is dropped from the left part; pad it back.
	left := ansi.Cut(row, 0, x)
	if lw := ansi.StringWidth(left); lw < x {
		left += strings.Repeat(" ", x-lw)
	}
	right := ""
	if x+w < width {
		right = ansi.Cut(row, x+w, width)
		if rw := ansi.StringWidth(right); rw < width-x-w {
			right = strings.Repeat(" ", width-x-w-rw) + right
		}
	}
	return left + cell + right
}
