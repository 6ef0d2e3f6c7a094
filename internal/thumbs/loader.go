// Package thumbs decodes, scales and caches photos for the terminal, and
// draws them with the best image protocol the terminal supports.
package thumbs

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"os"

	"github.com/nfnt/resize"

	"github.com/llehouerou/folio/internal/zoom"
)

// MaxSourceSize bounds the longest side of an image kept in memory for the
// lightbox.
const MaxSourceSize = 2048

// Loader reads image files and scales them, going through the cache.
type Loader struct {
	cache *Cache
}

// NewLoader returns a loader backed by cache. cache may be nil.
func NewLoader(cache *Cache) *Loader {
	return &Loader{cache: cache}
}

// Thumbnail returns the image at path scaled to fit width x height pixels,
// keeping its aspect ratio. Small images are not enlarged.
func (l *Loader) Thumbnail(path string, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid thumbnail size %dx%d", width, height)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	key := cacheKey(path, info.ModTime(), width, height)
	if data := l.cache.Get(key); data != nil {
		if img, err := png.Decode(bytes.NewReader(data)); err == nil {
			return img, nil
		}
	}

	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	//nolint:gosec // sizes are bounded by the terminal
	out := resize.Thumbnail(uint(width), uint(height), img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err == nil {
		_ = l.cache.Put(key, buf.Bytes())
	}
	return out, nil
}

// Source returns the image at path bounded to MaxSourceSize.
func (l *Loader) Source(path string) (image.Image, error) {
	return l.Thumbnail(path, MaxSourceSize, MaxSourceSize)
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Frame renders the part of img selected by r (in image pixels, as returned
// by zoom.Controller.Viewport) into a width x height canvas. Parts of r that
// fall outside the image stay transparent.
func Frame(img image.Image, r zoom.Rect, width, height int) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	if img == nil || width <= 0 || height <= 0 || r.W <= 0 || r.H <= 0 {
		return canvas
	}

	b := img.Bounds()
	// visible part of the image, relative to the image origin
	x0 := max(r.X, 0)
	y0 := max(r.Y, 0)
	x1 := min(r.X+r.W, float64(b.Dx()))
	y1 := min(r.Y+r.H, float64(b.Dy()))
	if x1 <= x0 || y1 <= y0 {
		return canvas
	}

	sx := float64(width) / r.W
	sy := float64(height) / r.H
	dst := image.Rect(
		int((x0-r.X)*sx+0.5), int((y0-r.Y)*sy+0.5),
		int((x1-r.X)*sx+0.5), int((y1-r.Y)*sy+0.5),
	).Intersect(canvas.Bounds())
	if dst.Empty() {
		return canvas
	}

	src := crop(img, image.Rect(
		b.Min.X+int(x0), b.Min.Y+int(y0),
		b.Min.X+int(x1+0.999), b.Min.Y+int(y1+0.999),
	))
	//nolint:gosec // sizes are bounded by the terminal
	scaled := resize.Resize(uint(dst.Dx()), uint(dst.Dy()), src, resize.Bilinear)
	draw.Draw(canvas, dst, scaled, scaled.Bounds().Min, draw.Src)
	return canvas
}

func crop(img image.Image, r image.Rectangle) image.Image {
	r = r.Intersect(img.Bounds())
	if sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(r)
	}
	out := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out
}
