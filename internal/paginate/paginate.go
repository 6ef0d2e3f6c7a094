// Package paginate reveals a flat item list page by page as the user scrolls
// towards its end.
//
// The Paginator is pure state. Time is owned by the caller: when a scroll
// sample crosses the proximity threshold the paginator enters the loading
// state and hands back a Ticket; the caller waits RevealDelay on its own event
// loop and then redeems the ticket with Reveal. A ticket issued before the
// list was reset or the paginator was cancelled is silently discarded.
package paginate

import "time"

// Defaults matching the gallery's behaviour.
const (
	DefaultPageSize    = 6
	DefaultThreshold   = 100
	DefaultRevealDelay = 300 * time.Millisecond
)

// State is a snapshot of the reveal window.
type State struct {
	Visible   int // number of revealed items
	Total     int
	PageSize  int
	Loading   bool
	Exhausted bool
}

// Ticket identifies a scheduled reveal.
type Ticket struct {
	gen uint64
}

// Paginator reveals items in pages of PageSize.
type Paginator[T any] struct {
	items     []T
	pageSize  int
	threshold float64
	visible   int
	loading   bool
	gen       uint64
}

// New creates a paginator showing the first page of items.
// A non-positive pageSize is treated as 1.
func New[T any](items []T, pageSize int, threshold float64) *Paginator[T] {
	p := &Paginator[T]{threshold: threshold}
	p.pageSize = max(pageSize, 1)
	p.ItemsChanged(items)
	return p
}

// ItemsChanged replaces the item list and resets the window to the first page.
// Any pending reveal is invalidated.
func (p *Paginator[T]) ItemsChanged(items []T) {
	p.items = items
	p.reset()
}

// SetPageSize changes the page size and resets the window.
func (p *Paginator[T]) SetPageSize(n int) {
	p.pageSize = max(n, 1)
	p.reset()
}

// SetThreshold changes the proximity threshold without resetting.
func (p *Paginator[T]) SetThreshold(threshold float64) {
	p.threshold = threshold
}

func (p *Paginator[T]) reset() {
	p.gen++
	p.loading = false
	p.visible = min(p.pageSize, len(p.items))
}

// NotifyScrollProximity reports the distance between the bottom of the
// viewport and the bottom of the content. When the distance is below the
// threshold and the paginator is neither loading nor exhausted it enters the
// loading state and returns a ticket to redeem after the reveal delay.
func (p *Paginator[T]) NotifyScrollProximity(distance float64) (Ticket, bool) {
	if distance >= p.threshold || p.loading || p.exhausted() {
		return Ticket{}, false
	}
	p.loading = true
	return Ticket{gen: p.gen}, true
}

// Reveal appends the next page for a ticket returned by NotifyScrollProximity.
// It returns the newly revealed items, or ok=false when the ticket is stale.
func (p *Paginator[T]) Reveal(t Ticket) (added []T, ok bool) {
	if !p.loading || t.gen != p.gen {
		return nil, false
	}
	start := p.visible
	p.visible = min(p.visible+p.pageSize, len(p.items))
	p.loading = false
	return p.items[start:p.visible], true
}

// Cancel discards any pending reveal. Used on teardown.
func (p *Paginator[T]) Cancel() {
	p.gen++
	p.loading = false
}

// Visible returns the revealed prefix.
func (p *Paginator[T]) Visible() []T {
	return p.items[:p.visible]
}

// Items returns the full list.
func (p *Paginator[T]) Items() []T {
	return p.items
}

// Loading reports whether a reveal is pending.
func (p *Paginator[T]) Loading() bool {
	return p.loading
}

// Exhausted reports whether every item is revealed.
func (p *Paginator[T]) Exhausted() bool {
	return p.exhausted()
}

func (p *Paginator[T]) exhausted() bool {
	return p.visible == len(p.items)
}

// State returns a snapshot of the window.
func (p *Paginator[T]) State() State {
	return State{
		Visible:   p.visible,
		Total:     len(p.items),
		PageSize:  p.pageSize,
		Loading:   p.loading,
		Exhausted: p.exhausted(),
	}
}
