package clock

import (
	"time"

	"github.com/sweeney/feed-reminder/internal/logic"
)

// Fake is a scripted clock for driving run loops in tests.
//
// NowTicks consumes Seq (repeating the last value once exhausted); Now
// derives wall time from the tick last handed out. After records the
// requested duration and returns Step, so the test controls exactly when
// the loop advances by sending on Step.
type Fake struct {
	// Base is the wall time corresponding to tick zero.
	Base time.Time

	// Seq contains the scripted tick values.
	Seq []logic.Ticks

	// Step is the channel returned by After.
	Step chan time.Time

	// Waits records every duration passed to After.
	Waits []time.Duration

	index int
	last  logic.Ticks
}

// NewFake creates a Fake with the given base wall time and tick script.
func NewFake(base time.Time, seq []logic.Ticks) *Fake {
	return &Fake{
		Base: base,
		Seq:  seq,
		Step: make(chan time.Time),
	}
}

// NowTicks returns the next scripted tick, repeating the last one once the
// script is exhausted.
func (f *Fake) NowTicks() logic.Ticks {
	if len(f.Seq) == 0 {
		return f.last
	}
	f.last = f.Seq[f.index]
	if f.index < len(f.Seq)-1 {
		f.index++
	}
	return f.last
}

// Now returns Base advanced by the tick most recently returned.
func (f *Fake) Now() time.Time {
	return f.Base.Add(time.Duration(f.last) * time.Millisecond)
}

// After records d and returns the test-controlled Step channel.
func (f *Fake) After(d time.Duration) <-chan time.Time {
	f.Waits = append(f.Waits, d)
	return f.Step
}
