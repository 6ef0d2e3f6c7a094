package thumbs

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// Kitty graphics protocol escape sequences
const (
	escStart = "\x1b_G"
	escEnd   = "\x1b\\"

	kittyChunkSize = 4096
)

// KittyProtocol transmits images once and places them by ID.
type KittyProtocol struct{}

func (KittyProtocol) Name() string { return ProtocolKitty }

func (KittyProtocol) Prepare(img image.Image, id uint32, _, _ int) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return TransmitPNG(buf.Bytes(), id), nil
}

func (KittyProtocol) Cells(_ uint32, cols, rows int) string { return Blank(cols, rows) }

// Place uses a fixed placement ID so a new placement replaces the previous one.
func (KittyProtocol) Place(id uint32, row, col, cols, rows int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	fmt.Fprintf(&sb, "%sa=p,i=%d,p=1,c=%d,r=%d,C=1,q=2;%s", escStart, id, cols, rows, escEnd)
	sb.WriteString("\x1b[u")
	return sb.String()
}

// Delete removes the image and all its placements.
func (KittyProtocol) Delete(id uint32) string {
	return fmt.Sprintf("%sa=d,d=i,i=%d,q=2;%s", escStart, id, escEnd)
}

func (KittyProtocol) TargetPixelSize(cols, rows int) (int, int) {
	return cols * defaultCellWidth, rows * defaultCellHeight
}

// TransmitPNG returns the chunked transmit-only (a=t) command for PNG data.
func TransmitPNG(data []byte, id uint32) string {
	encoded := base64.StdEncoding.EncodeToString(data)

	var sb strings.Builder
	for i := 0; i < len(encoded) || i == 0; i += kittyChunkSize {
		end := min(i+kittyChunkSize, len(encoded))
		more := 0
		if end < len(encoded) {
			more = 1
		}
		sb.WriteString(escStart)
		if i == 0 {
			fmt.Fprintf(&sb, "a=t,f=100,i=%d,q=2,m=%d;", id, more)
		} else {
			fmt.Fprintf(&sb, "m=%d;", more)
		}
		sb.WriteString(encoded[i:end])
		sb.WriteString(escEnd)
	}
	return sb.String()
}
