package thumbs

import (
	"image"
	"sync"
)

// Protocol abstracts how an image reaches the terminal.
type Protocol interface {
	// Name identifies the protocol in settings and status lines.
	Name() string

	// Prepare encodes img for display in cols x rows cells and returns any
	// one-time terminal command (Kitty transmits here).
	Prepare(img image.Image, id uint32, cols, rows int) (string, error)

	// Cells returns the text placed in the layout for the image. Graphics
	// protocols return blanks and draw over them with Place.
	Cells(id uint32, cols, rows int) string

	// Place returns the escape sequence drawing the image at the 1-based
	// terminal position (row, col). Inline protocols return "".
	Place(id uint32, row, col, cols, rows int) string

	// Delete releases the image.
	Delete(id uint32) string

	// TargetPixelSize returns the pixel size to scale an image to before
	// showing it in cols x rows cells.
	TargetPixelSize(cols, rows int) (width, height int)
}

// HalfBlockProtocol draws images with colored half-block characters. It works
// in every truecolor terminal.
type HalfBlockProtocol struct {
	mu     sync.RWMutex
	frames map[uint32]string
}

func NewHalfBlockProtocol() *HalfBlockProtocol {
	return &HalfBlockProtocol{frames: make(map[uint32]string)}
}

func (h *HalfBlockProtocol) Name() string { return ProtocolHalfBlock }

func (h *HalfBlockProtocol) Prepare(img image.Image, id uint32, cols, rows int) (string, error) {
	frame := RenderHalfBlocks(img, cols, rows)
	h.mu.Lock()
	h.frames[id] = frame
	h.mu.Unlock()
	return "", nil
}

func (h *HalfBlockProtocol) Cells(id uint32, cols, rows int) string {
	h.mu.RLock()
	frame, ok := h.frames[id]
	h.mu.RUnlock()
	if !ok {
		return Blank(cols, rows)
	}
	return frame
}

func (h *HalfBlockProtocol) Place(uint32, int, int, int, int) string { return "" }

func (h *HalfBlockProtocol) Delete(id uint32) string {
	h.mu.Lock()
	delete(h.frames, id)
	h.mu.Unlock()
	return ""
}

func (h *HalfBlockProtocol) TargetPixelSize(cols, rows int) (int, int) {
	return HalfBlockSize(cols, rows)
}
