package thumbs

import (
	"fmt"
	"image"
	"image/draw"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

const (
	upperHalf = "▀"
	sgrReset  = "\x1b[0m"
)

// HalfBlockSize returns the pixel size half-block rendering uses for a cell
// box: one pixel wide and two pixels tall per cell.
func HalfBlockSize(cols, rows int) (int, int) {
	return cols, rows * 2
}

// RenderHalfBlocks draws img into cols x rows cells. Each cell shows two
// pixels: the upper one as the foreground of "▀", the lower one as its
// background. The image keeps its aspect ratio and is centered; transparent
// pixels and padding show the terminal background.
func RenderHalfBlocks(img image.Image, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	pw, ph := HalfBlockSize(cols, rows)
	canvas := fit(img, pw, ph)

	var sb strings.Builder
	for y := 0; y < ph; y += 2 {
		var fg, bg string
		for x := range pw {
			top, topOK := pixel(canvas, x, y)
			bottom, bottomOK := pixel(canvas, x, y+1)

			switch {
			case !topOK && !bottomOK:
				if fg != "" || bg != "" {
					sb.WriteString(sgrReset)
					fg, bg = "", ""
				}
				sb.WriteByte(' ')
				continue
			case !bottomOK:
				if bg != "" {
					sb.WriteString(sgrReset)
					fg, bg = "", ""
				}
			case !topOK:
				// flip: lower pixel as foreground of the lower half block
				if fg != "" || bg != "" {
					sb.WriteString(sgrReset)
					fg, bg = "", ""
				}
				sb.WriteString(sgr(38, bottom))
				sb.WriteString("▄")
				sb.WriteString(sgrReset)
				continue
			default:
				if b := sgr(48, bottom); b != bg {
					sb.WriteString(b)
					bg = b
				}
			}
			if f := sgr(38, top); f != fg {
				sb.WriteString(f)
				fg = f
			}
			sb.WriteString(upperHalf)
		}
		if fg != "" || bg != "" {
			sb.WriteString(sgrReset)
		}
		if y+2 < ph {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// fit scales img into a w x h canvas, centered, without distorting it.
func fit(img image.Image, w, h int) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	if img == nil {
		return canvas
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return canvas
	}
	var scaled image.Image = img
	if b.Dx() != w || b.Dy() != h {
		//nolint:gosec // sizes are bounded by the terminal
		scaled = resize.Thumbnail(uint(w), uint(h), img, resize.Bilinear)
		if sb := scaled.Bounds(); sb.Dx() < w && sb.Dy() < h {
			// small image: enlarge until one side touches the box
			ratio := min(float64(w)/float64(sb.Dx()), float64(h)/float64(sb.Dy()))
			//nolint:gosec // sizes are bounded by the terminal
			scaled = resize.Resize(uint(float64(sb.Dx())*ratio), uint(float64(sb.Dy())*ratio), img, resize.NearestNeighbor)
		}
	}
	sb := scaled.Bounds()
	off := image.Pt((w-sb.Dx())/2, (h-sb.Dy())/2)
	draw.Draw(canvas, sb.Sub(sb.Min).Add(off), scaled, sb.Min, draw.Src)
	return canvas
}

// pixel returns the color at (x, y) and false for transparent pixels.
func pixel(img *image.NRGBA, x, y int) (colorful.Color, bool) {
	if !(image.Point{X: x, Y: y}.In(img.Rect)) {
		return colorful.Color{}, false
	}
	c := img.NRGBAAt(x, y)
	if c.A < 128 {
		return colorful.Color{}, false
	}
	c.A = 255
	col, ok := colorful.MakeColor(c)
	return col, ok
}

// sgr returns a 24-bit color escape: 38 selects the foreground, 48 the
// background.
func sgr(code int, c colorful.Color) string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", code, r, g, b)
}

// Blank returns cols x rows spaces, used to reserve layout space for images
// drawn by a graphics protocol.
func Blank(cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	line := strings.Repeat(" ", cols)
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
