// Package status tracks the most recent feeder state for the web page and
// for retained MQTT snapshots.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/feed-reminder/internal/logic"
)

// Config is the runtime configuration shown on the status page.
type Config struct {
	IntervalHours   int
	IntervalMinutes int
	PollMs          int64
	WaitMs          int64
	HeartbeatMs     int64
	Broker          string
	HTTPAddr        string
}

// Snapshot is a point-in-time copy of the tracker contents.
type Snapshot struct {
	State         logic.State
	IndicatorOn   bool
	LastFed       time.Time
	Remaining     *logic.Remaining
	Counts        logic.EventCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       Network
	Config        Config
}

// Network identifies the host on the home network.
type Network struct {
	Hostname string
	IP       string
}

// Tracker holds the latest feeder state behind a mutex. The poll loop
// writes, the web handlers read.
type Tracker struct {
	mu sync.RWMutex

	state       logic.State
	indicatorOn bool
	lastFed     time.Time
	remaining   *logic.Remaining
	counts      logic.EventCounts
	startTime   time.Time
	network     Network
	config      Config

	connStatus interface{ IsConnected() bool }
}

// NewTracker starts a tracker in the power-on state.
func NewTracker(startTime time.Time, network Network, config Config) *Tracker {
	return &Tracker{
		state:       logic.StateNeedsFeeding,
		indicatorOn: true,
		startTime:   startTime,
		network:     network,
		config:      config,
	}
}

// SetConnectionStatus wires the MQTT client in after construction. May be
// left unset when running without a broker.
func (t *Tracker) SetConnectionStatus(cs interface{ IsConnected() bool }) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.connStatus = cs
}

// Update records the outcome of one control tick.
func (t *Tracker) Update(state logic.State, indicatorOn bool, remaining *logic.Remaining, counts logic.EventCounts) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = state
	t.indicatorOn = indicatorOn
	t.remaining = remaining
	t.counts = counts
}

// RecordFed notes the acknowledgment time for the "last fed" display.
func (t *Tracker) RecordFed(when time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastFed = when
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot(now time.Time) Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var rem *logic.Remaining
	if t.remaining != nil {
		r := *t.remaining
		rem = &r
	}
	connected := false
	if t.connStatus != nil {
		connected = t.connStatus.IsConnected()
	}
	return Snapshot{
		State:         t.state,
		IndicatorOn:   t.indicatorOn,
		LastFed:       t.lastFed,
		Remaining:     rem,
		Counts:        t.counts,
		StartTime:     t.startTime,
		Now:           now,
		MQTTConnected: connected,
		Network:       t.network,
		Config:        t.config,
	}
}

// Uptime reports how long the daemon has been running.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}
