// Package layout provides pure functions for UI dimension calculations.
package layout

import "math"

// Fixed bar heights.
const (
	HeaderHeight      = 1
	CategoryBarHeight = 1
	StatusHeight      = 1
)

// Slideshow sizing. The hero is hidden on terminals shorter than
// MinHeightForSlideshow so the grid keeps room to scroll.
const (
	MinHeightForSlideshow = 24
	MinSlideshowHeight    = 8
	MaxSlideshowHeight    = 16
)

// ColumnGutter is the number of blank cells between gallery columns.
const ColumnGutter = 2

// InfoPanelWidth is the width of the lightbox details panel.
const InfoPanelWidth = 36

// ContentOpts contains the parameters needed to calculate content height.
type ContentOpts struct {
	HeaderHeight      int
	CategoryBarHeight int
	SlideshowHeight   int // 0 if hidden
	StatusHeight      int
}

// ContentHeight returns the rows left for the masonry grid. Never negative.
func ContentHeight(windowHeight int, opts ContentOpts) int {
	h := windowHeight - opts.HeaderHeight - opts.CategoryBarHeight -
		opts.SlideshowHeight - opts.StatusHeight
	return max(h, 0)
}

// SlideshowHeight returns the hero height for a window: a third of it,
// bounded, or 0 when the window is too short or there is nothing to show.
func SlideshowHeight(windowHeight int, hasSlides bool) int {
	if !hasSlides || windowHeight < MinHeightForSlideshow {
		return 0
	}
	return min(max(windowHeight/3, MinSlideshowHeight), MaxSlideshowHeight)
}

// TileWidth returns the cell width of one gallery column.
func TileWidth(windowWidth, columns int) int {
	columns = max(columns, 1)
	return max((windowWidth-(columns-1)*ColumnGutter)/columns, 1)
}

// ColumnX returns the first cell of column col.
func ColumnX(col, tileWidth int) int {
	return col * (tileWidth + ColumnGutter)
}

// Rows converts a pixel height to terminal rows, rounding up.
func Rows(px float64, cellHeight int) int {
	if px <= 0 || cellHeight <= 0 {
		return 0
	}
	return int(math.Ceil(px / float64(cellHeight)))
}

// LightboxImageArea returns the cells available for the image in the
// lightbox, leaving one row for the caption and the info panel if shown.
func LightboxImageArea(windowWidth, windowHeight int, infoVisible bool) (cols, rows int) {
	cols = windowWidth
	if infoVisible && windowWidth > 2*InfoPanelWidth {
		cols -= InfoPanelWidth
	}
	rows = windowHeight - StatusHeight - 1
	return max(cols, 0), max(rows, 0)
}

// FitImage returns the largest cell box with the image's aspect ratio that
// fits in availCols x availRows. cellW and cellH are the pixel size of one
// cell for the protocol in use.
func FitImage(availCols, availRows, imgW, imgH, cellW, cellH int) (cols, rows int) {
	if availCols <= 0 || availRows <= 0 {
		return 0, 0
	}
	if imgW <= 0 || imgH <= 0 || cellW <= 0 || cellH <= 0 {
		return availCols, availRows
	}
	aspect := float64(imgH) / float64(imgW)
	cols = availCols
	rows = int(math.Round(float64(cols*cellW) * aspect / float64(cellH)))
	if rows > availRows {
		rows = availRows
		cols = int(math.Round(float64(rows*cellH) / aspect / float64(cellW)))
	}
	return max(min(cols, availCols), 1), max(rows, 1)
}
