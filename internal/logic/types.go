// Package logic contains the pure reminder state machine.
// This package has NO external dependencies (no GPIO wiring, MQTT, OS, or
// time.Sleep). Time is always injected: wall time via time.Time parameters,
// monotonic time via Ticks.
package logic

import (
	"fmt"
	"time"
)

// State represents the reminder state.
type State string

const (
	// StateNeedsFeeding means the interval has elapsed (or the device just
	// powered up) and the indicator is on until the button is pressed.
	StateNeedsFeeding State = "NEEDS_FEEDING"
	// StateWaiting means a feeding was acknowledged and the timer is running.
	StateWaiting State = "WAITING"
)

// EventType represents a state transition event.
type EventType string

const (
	EventFed     EventType = "FED"      // button press accepted
	EventFeedDue EventType = "FEED_DUE" // interval elapsed
)

// Event represents a state transition to be published.
type Event struct {
	Timestamp time.Time
	Ticks     Ticks
	Type      EventType
	State     State // state after the transition
}

// Input is a single control-loop sample. Ticks drives all elapsed-time
// computation; Time is only used to stamp events and heartbeats.
type Input struct {
	Ticks Ticks
	Time  time.Time
}

// Result is the outcome of one Tick.
type Result struct {
	// Event is the transition that occurred this tick, if any.
	Event *Event
	// Remaining is the countdown diagnostic, set on every tick spent in
	// StateWaiting (including the tick that trips the threshold, where it
	// can be zero or negative).
	Remaining *Remaining
	// Wait reports whether the caller should take the low-power wait before
	// the next tick. It is never set on a tick that produced a transition.
	Wait bool
}

// Remaining is the human-readable countdown until the next reminder.
type Remaining struct {
	Hours   int
	Minutes int
}

func (r Remaining) String() string {
	return fmt.Sprintf("%d hour(s) %d minute(s) until next feeding", r.Hours, r.Minutes)
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	Fed int
	Due int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}

// Output drives the reminder indicator line.
type Output interface {
	Set(on bool) error
}

// Button reads the debounced acknowledgment input. True means pressed.
type Button interface {
	Read() (bool, error)
}
