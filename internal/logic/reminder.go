package logic

import (
	"errors"
	"fmt"
	"time"
)

// ErrNegativeInterval is returned when the configured interval has a
// negative hours or minutes component.
var ErrNegativeInterval = errors.New("interval components must be >= 0")

// Interval is the configured duration between an acknowledgment and the
// next reminder activation.
type Interval struct {
	Hours   int
	Minutes int
}

// Duration converts the interval to a fixed duration. Done once at
// construction; the interval is immutable afterwards.
func (iv Interval) Duration() time.Duration {
	return time.Duration(iv.Hours)*time.Hour + time.Duration(iv.Minutes)*time.Minute
}

// Reminder is the single authority over the indicator: it is the only
// writer of the output line and the only consumer of the button. The
// indicator is on if and only if the state is StateNeedsFeeding; every
// transition writes the output before mutating state, so a failed write
// leaves both unchanged and the invariant holds across faults.
type Reminder struct {
	interval    time.Duration
	showMinutes bool // configured interval had a non-zero minutes part

	state       State
	indicatorOn bool
	lastAck     Ticks

	out Output
	btn Button

	startTime     time.Time
	lastHeartbeat time.Time
	counts        EventCounts
}

// New creates a Reminder and forces the power-up contract: state
// NEEDS_FEEDING with the indicator on, regardless of what the hardware was
// showing before. Operators are expected to press the button at power-on if
// the task was already done.
func New(iv Interval, out Output, btn Button, startTime time.Time) (*Reminder, error) {
	if iv.Hours < 0 || iv.Minutes < 0 {
		return nil, fmt.Errorf("interval %dh%dm: %w", iv.Hours, iv.Minutes, ErrNegativeInterval)
	}

	if err := out.Set(true); err != nil {
		return nil, fmt.Errorf("set indicator: %w", err)
	}

	return &Reminder{
		interval:      iv.Duration(),
		showMinutes:   iv.Minutes != 0,
		state:         StateNeedsFeeding,
		indicatorOn:   true,
		out:           out,
		btn:           btn,
		startTime:     startTime,
		lastHeartbeat: startTime,
	}, nil
}

// Tick runs one iteration of the control loop.
//
// While NEEDS_FEEDING the button is polled once; a press turns the
// indicator off, records the acknowledgment tick and emits a FED event.
// While WAITING the button is ignored (a second press cannot reset the
// timer), the countdown diagnostic is computed, and once the interval has
// elapsed (inclusive threshold) the indicator turns back on with a
// FEED_DUE event. Result.Wait asks the caller for the low-power wait and is
// never set on a transition tick, so a just-triggered reminder is acted on
// without delay.
//
// A peripheral error aborts the tick with state and indicator unchanged.
func (r *Reminder) Tick(in Input) (Result, error) {
	switch r.state {
	case StateNeedsFeeding:
		pressed, err := r.btn.Read()
		if err != nil {
			return Result{}, fmt.Errorf("read button: %w", err)
		}
		if !pressed {
			return Result{}, nil
		}

		if err := r.out.Set(false); err != nil {
			return Result{}, fmt.Errorf("set indicator: %w", err)
		}
		r.indicatorOn = false
		r.state = StateWaiting
		r.lastAck = in.Ticks
		r.counts.Fed++
		return Result{Event: r.event(in, EventFed)}, nil

	default: // StateWaiting
		elapsed := TicksDiff(in.Ticks, r.lastAck)
		rem := r.remaining(elapsed)

		if elapsed >= r.interval {
			if err := r.out.Set(true); err != nil {
				return Result{}, fmt.Errorf("set indicator: %w", err)
			}
			r.indicatorOn = true
			r.state = StateNeedsFeeding
			r.counts.Due++
			return Result{Event: r.event(in, EventFeedDue), Remaining: rem}, nil
		}

		return Result{Remaining: rem, Wait: true}, nil
	}
}

func (r *Reminder) event(in Input, typ EventType) *Event {
	return &Event{
		Timestamp: in.Time,
		Ticks:     in.Ticks,
		Type:      typ,
		State:     r.state,
	}
}

// remaining decomposes interval-elapsed into whole hours and minutes.
// Intervals configured as whole hours report a zero minutes component even
// when real minutes remain, so the countdown only ever shows the units the
// interval was set in.
func (r *Reminder) remaining(elapsed time.Duration) *Remaining {
	left := r.interval - elapsed
	rem := &Remaining{Hours: int(left / time.Hour)}
	if r.showMinutes {
		rem.Minutes = int(left % time.Hour / time.Minute)
	}
	return rem
}

// State returns the current reminder state.
func (r *Reminder) State() State {
	return r.state
}

// IndicatorOn returns the level the indicator line was last driven to.
func (r *Reminder) IndicatorOn() bool {
	return r.indicatorOn
}

// LastAck returns the tick recorded at the most recent acknowledgment.
// Meaningful only while the state is StateWaiting.
func (r *Reminder) LastAck() Ticks {
	return r.lastAck
}

// Counts returns the event totals since startup.
func (r *Reminder) Counts() EventCounts {
	return r.counts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since
// the last heartbeat (or startup). Returns nil if the interval has not
// elapsed or is <= 0 (disabled).
func (r *Reminder) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if now.Sub(r.lastHeartbeat) < interval {
		return nil
	}

	r.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(r.startTime),
		Counts:    r.counts,
	}
}
