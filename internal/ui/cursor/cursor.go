// Package cursor tracks a cursor and scroll offset over a vertical list.
package cursor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/keymap"
)

// WheelStep is the number of rows a mouse wheel notch moves the cursor.
const WheelStep = 3

// Cursor manages cursor position and scroll offset for a scrollable list.
// The list length and viewport height are passed to methods rather than
// stored, since they change as photos are added and the terminal resizes.
type Cursor struct {
	pos    int
	offset int // first visible row
	margin int // rows kept visible above/below the cursor
}

// New creates a Cursor with the given scroll margin.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Pos returns the cursor position.
func (c Cursor) Pos() int {
	return c.pos
}

// Offset returns the scroll offset.
func (c Cursor) Offset() int {
	return c.offset
}

// Move moves the cursor by delta, clamped to the list. No-op on an empty list.
func (c *Cursor) Move(delta, listLen, height int) {
	c.Jump(c.pos+delta, listLen, height)
}

// Jump sets the cursor to pos, clamped to the list.
func (c *Cursor) Jump(pos, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.EnsureVisible(listLen, height)
}

// JumpStart moves to the first row.
func (c *Cursor) JumpStart() {
	c.Reset()
}

// JumpEnd moves to the last row.
func (c *Cursor) JumpEnd(listLen, height int) {
	c.Jump(listLen-1, listLen, height)
}

// EnsureVisible scrolls so the cursor sits inside the margin.
func (c *Cursor) EnsureVisible(listLen, height int) {
	if height <= 0 || listLen == 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)
	if c.pos < c.offset+margin {
		c.offset = c.pos - margin
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}
	c.offset = clamp(c.offset, max(listLen-height, 0))
}

// ClampToBounds pulls the cursor back inside a list that shrank.
// It reports whether the cursor moved.
func (c *Cursor) ClampToBounds(listLen int) bool {
	old := *c
	if listLen == 0 {
		c.Reset()
	} else {
		c.pos = clamp(c.pos, listLen-1)
		c.offset = clamp(c.offset, c.pos)
	}
	return *c != old
}

// VisibleRange returns the visible indices [start, end).
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, listLen)
}

// Reset moves the cursor and offset back to zero.
func (c *Cursor) Reset() {
	c.pos = 0
	c.offset = 0
}

// HandleAction applies a navigation action and reports whether it was one.
func (c *Cursor) HandleAction(a keymap.Action, listLen, height int) bool {
	switch a {
	case keymap.ActionMoveDown:
		c.Move(1, listLen, height)
	case keymap.ActionMoveUp:
		c.Move(-1, listLen, height)
	case keymap.ActionPageDown:
		c.Move(max(height/2, 1), listLen, height)
	case keymap.ActionPageUp:
		c.Move(-max(height/2, 1), listLen, height)
	case keymap.ActionJumpStart:
		c.JumpStart()
	case keymap.ActionJumpEnd:
		c.JumpEnd(listLen, height)
	default:
		return false
	}
	return true
}

// HandleWheel moves the cursor on mouse wheel events and reports whether
// msg was a wheel event.
func (c *Cursor) HandleWheel(msg tea.MouseMsg, listLen, height int) bool {
	if msg.Action != tea.MouseActionPress {
		return false
	}
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		c.Move(WheelStep, listLen, height)
	case tea.MouseButtonWheelUp:
		c.Move(-WheelStep, listLen, height)
	default:
		return false
	}
	return true
}

func clamp(v, maxVal int) int {
	return max(min(v, maxVal), 0)
}
