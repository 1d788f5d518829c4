// Package clock provides the monotonic tick source and the wait primitive
// for the control loop, with a scripted fake for tests.
package clock

import (
	"time"

	"github.com/sweeney/feed-reminder/internal/logic"
)

// Clock supplies monotonic ticks, wall time, and a wait channel.
type Clock interface {
	// NowTicks returns the current monotonic millisecond tick. The value
	// wraps; consumers must use logic.TicksDiff.
	NowTicks() logic.Ticks

	// Now returns the wall-clock time, used only for event timestamps.
	Now() time.Time

	// After returns a channel that fires once d has elapsed. The wait is
	// best-effort: callers must recompute elapsed time from ticks on wake,
	// never assume the full duration was granted.
	After(d time.Duration) <-chan time.Time
}

// Monotonic is the real clock, backed by the runtime monotonic reading.
type Monotonic struct {
	start time.Time
}

// NewMonotonic creates a Monotonic anchored at the current instant.
func NewMonotonic() *Monotonic {
	return &Monotonic{start: time.Now()}
}

// NowTicks returns milliseconds since the anchor, truncated to the tick
// width. time.Since uses the monotonic reading, so wall-clock steps do not
// affect it.
func (c *Monotonic) NowTicks() logic.Ticks {
	return logic.Ticks(time.Since(c.start).Milliseconds())
}

// Now returns the current wall-clock time.
func (c *Monotonic) Now() time.Time {
	return time.Now()
}

// After defers to time.After.
func (c *Monotonic) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
