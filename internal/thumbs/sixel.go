package thumbs

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mattn/go-sixel"
)

// placeCounter makes every Place output unique so Bubble Tea's renderer never
// skips re-sending the image when only surrounding text changed.
var placeCounter uint64

// SixelProtocol encodes images as Sixel data and emits it on every Place.
type SixelProtocol struct {
	mu     sync.RWMutex
	images map[uint32]string
	cellW  int
	cellH  int
}

// NewSixelProtocol queries the terminal cell size in pixels.
func NewSixelProtocol() *SixelProtocol {
	cellW, cellH := getCellSize()
	return &SixelProtocol{
		images: make(map[uint32]string),
		cellW:  cellW,
		cellH:  cellH,
	}
}

func (s *SixelProtocol) Name() string { return ProtocolSixel }

func (s *SixelProtocol) Prepare(img image.Image, id uint32, _, _ int) (string, error) {
	var buf bytes.Buffer
	enc := sixel.NewEncoder(&buf)
	enc.Dither = true
	if err := enc.Encode(img); err != nil {
		return "", fmt.Errorf("encode sixel: %w", err)
	}

	s.mu.Lock()
	s.images[id] = buf.String()
	s.mu.Unlock()
	return "", nil
}

func (s *SixelProtocol) Cells(_ uint32, cols, rows int) string { return Blank(cols, rows) }

func (s *SixelProtocol) Place(id uint32, row, col, _, _ int) string {
	s.mu.RLock()
	data, ok := s.images[id]
	s.mu.RUnlock()
	if !ok {
		return ""
	}

	seq := atomic.AddUint64(&placeCounter, 1)
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	sb.WriteString(data)
	fmt.Fprintf(&sb, "\x1b[u\x1b[%dm\x1b[0m", seq%255+1)
	return sb.String()
}

func (s *SixelProtocol) Delete(id uint32) string {
	s.mu.Lock()
	delete(s.images, id)
	s.mu.Unlock()
	return ""
}

// TargetPixelSize leaves one row of margin so the image never makes the
// terminal scroll.
func (s *SixelProtocol) TargetPixelSize(cols, rows int) (int, int) {
	return cols * s.cellW, max(rows-1, 1) * s.cellH
}
