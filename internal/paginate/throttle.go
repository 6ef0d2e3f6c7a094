package paginate

import "time"

// DefaultThrottleInterval bounds how often scroll samples are evaluated.
const DefaultThrottleInterval = 200 * time.Millisecond

// Decision tells the caller what to do with a sample.
type Decision struct {
	// Fire means evaluate the sample now.
	Fire bool
	// Schedule means a trailing evaluation must run after Wait; pass Token
	// back to Trailing when the timer expires.
	Schedule bool
	Wait     time.Duration
	Token    uint64
}

// Throttle limits evaluations to one per interval and guarantees a trailing
// evaluation when samples arrive during the quiet period, so the final
// scroll position is never starved.
type Throttle struct {
	interval time.Duration
	last     time.Time
	pending  bool
	gen      uint64
}

// NewThrottle creates a throttle. A non-positive interval fires every sample.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Sample registers a scroll sample at now.
func (t *Throttle) Sample(now time.Time) Decision {
	if t.interval <= 0 || t.last.IsZero() || now.Sub(t.last) >= t.interval {
		t.last = now
		// A leading fire supersedes any trailing timer still in flight.
		t.pending = false
		t.gen++
		return Decision{Fire: true}
	}
	if t.pending {
		// The trailing evaluation already scheduled reads the latest
		// position, so later samples fold into it.
		return Decision{}
	}
	t.pending = true
	t.gen++
	return Decision{
		Schedule: true,
		Wait:     t.last.Add(t.interval).Sub(now),
		Token:    t.gen,
	}
}

// Trailing is called when a scheduled timer expires. It reports whether the
// trailing evaluation should run.
func (t *Throttle) Trailing(token uint64, now time.Time) bool {
	if !t.pending || token != t.gen {
		return false
	}
	t.pending = false
	t.last = now
	return true
}

// Reset forgets the last evaluation and drops any pending trailing call.
func (t *Throttle) Reset() {
	t.pending = false
	t.gen++
	t.last = time.Time{}
}
