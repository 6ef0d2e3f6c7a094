package thumbs

import (
	"image"
	"sync"
	"sync/atomic"
)

var nextImageID uint32

func newImageID() uint32 {
	return atomic.AddUint32(&nextImageID, 1)
}

// Renderer shows one image at a time through a Protocol, replacing the
// previous image when a new frame is shown.
type Renderer struct {
	mu       sync.RWMutex
	protocol Protocol

	id     uint32
	cols   int
	rows   int
	failed bool
}

// NewRenderer returns a renderer drawing with p. A nil p draws half blocks.
func NewRenderer(p Protocol) *Renderer {
	if p == nil {
		p = NewHalfBlockProtocol()
	}
	return &Renderer{protocol: p}
}

// Protocol returns the protocol in use.
func (r *Renderer) Protocol() Protocol {
	return r.protocol
}

// PixelSize returns the pixel size frames should have for cols x rows cells.
func (r *Renderer) PixelSize(cols, rows int) (int, int) {
	return r.protocol.TargetPixelSize(cols, rows)
}

// Show prepares img for cols x rows cells and returns the terminal commands
// to write once: the deletion of the previous image and any transmission.
func (r *Renderer) Show(img image.Image, cols, rows int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cmd string
	if r.id > 0 {
		cmd = r.protocol.Delete(r.id)
	}
	r.id = newImageID()
	r.cols, r.rows = cols, rows

	transmit, err := r.protocol.Prepare(img, r.id, cols, rows)
	if err != nil {
		r.protocol.Delete(r.id)
		r.id = 0
		r.failed = true
		return cmd
	}
	r.failed = false
	return cmd + transmit
}

// Cells returns the layout text of the current image, or blanks.
func (r *Renderer) Cells() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.id == 0 {
		return Blank(r.cols, r.rows)
	}
	return r.protocol.Cells(r.id, r.cols, r.rows)
}

// Place returns the command drawing the current image at (row, col).
func (r *Renderer) Place(row, col int) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.id == 0 {
		return ""
	}
	return r.protocol.Place(r.id, row, col, r.cols, r.rows)
}

// HasImage reports whether an image is prepared.
func (r *Renderer) HasImage() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.id > 0
}

// Failed reports whether the last Show could not encode its image.
func (r *Renderer) Failed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.failed
}

// Clear releases the current image and returns the terminal command to do so.
func (r *Renderer) Clear() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cmd string
	if r.id > 0 {
		cmd = r.protocol.Delete(r.id)
	}
	r.id = 0
	r.failed = false
	return cmd
}
