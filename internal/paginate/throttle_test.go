package paginate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func TestThrottle_FirstSampleFires(t *testing.T) {
	th := NewThrottle(200 * time.Millisecond)
	d := th.Sample(at(0))
	assert.True(t, d.Fire)
	assert.False(t, d.Schedule)
}

func TestThrottle_QuietPeriodSchedulesOneTrailing(t *testing.T) {
	th := NewThrottle(200 * time.Millisecond)
	th.Sample(at(0))

	d := th.Sample(at(50))
	assert.False(t, d.Fire)
	assert.True(t, d.Schedule)
	assert.Equal(t, 150*time.Millisecond, d.Wait)

	// Further samples in the quiet period fold into the pending trailing call.
	for _, ms := range []int{80, 120, 190} {
		d2 := th.Sample(at(ms))
		assert.False(t, d2.Fire, "sample at %dms", ms)
		assert.False(t, d2.Schedule, "sample at %dms", ms)
	}

	assert.True(t, th.Trailing(d.Token, at(200)), "trailing call must run")
	assert.False(t, th.Trailing(d.Token, at(201)), "trailing call runs once")
}

func TestThrottle_TrailingStartsNewInterval(t *testing.T) {
	th := NewThrottle(200 * time.Millisecond)
	th.Sample(at(0))
	d := th.Sample(at(100))
	th.Trailing(d.Token, at(200))

	// 100ms after the trailing evaluation we are still inside its interval.
	d2 := th.Sample(at(300))
	assert.False(t, d2.Fire)
	assert.True(t, d2.Schedule)
	assert.Equal(t, 100*time.Millisecond, d2.Wait)

	d3 := th.Sample(at(450))
	assert.True(t, d3.Fire)
}

func TestThrottle_LeadingFireSupersedesLateTrailing(t *testing.T) {
	th := NewThrottle(200 * time.Millisecond)
	th.Sample(at(0))
	d := th.Sample(at(10))

	// The trailing timer is late; a new sample after the interval fires.
	assert.True(t, th.Sample(at(260)).Fire)
	assert.False(t, th.Trailing(d.Token, at(270)), "stale trailing must not run")
}

func TestThrottle_BoundedRate(t *testing.T) {
	th := NewThrottle(200 * time.Millisecond)
	fires := 0
	var timerAt time.Time
	var token uint64
	for ms := 0; ms <= 1000; ms += 10 {
		now := at(ms)
		// emulate the event loop timer
		if !timerAt.IsZero() && !now.Before(timerAt) {
			if th.Trailing(token, timerAt) {
				fires++
			}
			timerAt = time.Time{}
		}
		d := th.Sample(now)
		if d.Fire {
			fires++
		}
		if d.Schedule {
			timerAt = now.Add(d.Wait)
			token = d.Token
		}
	}
	// leading call at 0, then one trailing call per 200ms window
	assert.Equal(t, 6, fires)
	// the burst's final position still gets its trailing evaluation
	assert.False(t, timerAt.IsZero())
	assert.True(t, th.Trailing(token, timerAt))
}

func TestThrottle_ZeroIntervalAlwaysFires(t *testing.T) {
	th := NewThrottle(0)
	for ms := range 5 {
		assert.True(t, th.Sample(at(ms)).Fire)
	}
}

func TestThrottle_Reset(t *testing.T) {
	th := NewThrottle(200 * time.Millisecond)
	th.Sample(at(0))
	d := th.Sample(at(50))

	th.Reset()

	assert.False(t, th.Trailing(d.Token, at(200)))
	assert.True(t, th.Sample(at(60)).Fire, "first sample after reset fires")
}
