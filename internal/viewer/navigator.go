// Package viewer holds the lightbox cursor: which photo of a fixed list is on
// screen, and the zoom state that belongs to it.
package viewer

import (
	"errors"

	"github.com/llehouerou/folio/internal/photo"
	"github.com/llehouerou/folio/internal/zoom"
)

var (
	// ErrEmpty is returned when opening on an empty list.
	ErrEmpty = errors.New("viewer: no photos to show")
	// ErrUnknownStart is returned in strict mode when the start ID is not in
	// the list.
	ErrUnknownStart = errors.New("viewer: start photo not in list")
)

// ScrollLock suppresses scrolling of whatever is behind the viewer.
// Lock and Unlock must be idempotent.
type ScrollLock interface {
	Lock()
	Unlock()
}

type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}

// Options configures the navigator.
type Options struct {
	// StrictStart makes Open fail with ErrUnknownStart instead of falling
	// back to the first photo.
	StrictStart bool
}

// Navigator is either closed or open on a list with a current index.
// The list is a snapshot taken at Open.
type Navigator struct {
	opts  Options
	lock  ScrollLock
	zoom  *zoom.Controller
	items []photo.Item
	index int // -1 when closed
}

// New creates a closed navigator. A nil lock disables scroll locking; a nil
// zoom controller is replaced by a fresh one.
func New(lock ScrollLock, z *zoom.Controller, opts Options) *Navigator {
	if lock == nil {
		lock = noLock{}
	}
	if z == nil {
		z = zoom.New(zoom.Options{})
	}
	return &Navigator{opts: opts, lock: lock, zoom: z, index: -1}
}

// Open shows items starting at the photo with startID. Opening while already
// open replaces the list.
func (n *Navigator) Open(items []photo.Item, startID string) error {
	if len(items) == 0 {
		return ErrEmpty
	}
	idx := photo.IndexOf(items, startID)
	if idx < 0 {
		if n.opts.StrictStart {
			return ErrUnknownStart
		}
		idx = 0
	}
	wasOpen := n.IsOpen()
	n.items = items
	n.index = idx
	n.zoom.Reset()
	if !wasOpen {
		n.lock.Lock()
	}
	return nil
}

// Close returns to the closed state and releases the scroll lock.
func (n *Navigator) Close() {
	if !n.IsOpen() {
		return
	}
	n.items = nil
	n.index = -1
	n.zoom.Reset()
	n.lock.Unlock()
}

// IsOpen reports whether a photo is on screen.
func (n *Navigator) IsOpen() bool {
	return n.index >= 0
}

// Next moves to the following photo, wrapping to the first.
func (n *Navigator) Next() {
	if !n.IsOpen() {
		return
	}
	n.set((n.index + 1) % len(n.items))
}

// Previous moves to the preceding photo, wrapping to the last.
func (n *Navigator) Previous() {
	if !n.IsOpen() {
		return
	}
	n.set((n.index - 1 + len(n.items)) % len(n.items))
}

// Jump moves to index i, clamped to the list.
func (n *Navigator) Jump(i int) {
	if !n.IsOpen() {
		return
	}
	n.set(max(0, min(i, len(n.items)-1)))
}

// set changes the index; the zoom always starts over on a new photo.
func (n *Navigator) set(i int) {
	n.index = i
	n.zoom.Reset()
}

// Current returns the photo on screen.
func (n *Navigator) Current() (photo.Item, bool) {
	if !n.IsOpen() {
		return photo.Item{}, false
	}
	return n.items[n.index], true
}

// Index returns the current index, or -1 when closed.
func (n *Navigator) Index() int {
	return n.index
}

// Len returns the size of the open list.
func (n *Navigator) Len() int {
	return len(n.items)
}

// Items returns the open list.
func (n *Navigator) Items() []photo.Item {
	return n.items
}

// Zoom returns the zoom controller of the current photo.
func (n *Navigator) Zoom() *zoom.Controller {
	return n.zoom
}
