package status

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/feed-reminder/internal/logic"
)

var testConfig = Config{
	IntervalHours:   6,
	IntervalMinutes: 0,
	PollMs:          250,
	WaitMs:          60000,
	HeartbeatMs:     900000,
	Broker:          "tcp://localhost:1883",
	HTTPAddr:        ":8080",
}

type fakeConn struct{ connected bool }

func (f fakeConn) IsConnected() bool { return f.connected }

func TestTrackerInitialSnapshot(t *testing.T) {
	start := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	tr := NewTracker(start, Network{Hostname: "fishtank-pi"}, testConfig)

	s := tr.Snapshot(start.Add(5 * time.Second))
	if s.State != logic.StateNeedsFeeding {
		t.Errorf("State = %s, want NEEDS_FEEDING at power-on", s.State)
	}
	if !s.IndicatorOn {
		t.Error("IndicatorOn = false, want true at power-on")
	}
	if !s.LastFed.IsZero() {
		t.Errorf("LastFed = %v, want zero before first ack", s.LastFed)
	}
	if s.Uptime() != 5*time.Second {
		t.Errorf("Uptime = %v, want 5s", s.Uptime())
	}
	if s.MQTTConnected {
		t.Error("MQTTConnected = true with no connection status wired")
	}
}

func TestTrackerUpdate(t *testing.T) {
	start := time.Now()
	tr := NewTracker(start, Network{}, testConfig)

	rem := &logic.Remaining{Hours: 2, Minutes: 0}
	tr.Update(logic.StateWaiting, false, rem, logic.EventCounts{Fed: 1})
	tr.RecordFed(start.Add(time.Minute))

	s := tr.Snapshot(time.Now())
	if s.State != logic.StateWaiting || s.IndicatorOn {
		t.Errorf("snapshot = %s/%v, want WAITING with indicator off", s.State, s.IndicatorOn)
	}
	if s.Remaining == nil || s.Remaining.Hours != 2 {
		t.Errorf("Remaining = %+v, want 2h0m", s.Remaining)
	}
	if s.Counts.Fed != 1 {
		t.Errorf("Counts.Fed = %d, want 1", s.Counts.Fed)
	}
	if !s.LastFed.Equal(start.Add(time.Minute)) {
		t.Errorf("LastFed = %v, want %v", s.LastFed, start.Add(time.Minute))
	}

	// The snapshot holds a copy, not the tracker's pointer.
	rem.Hours = 99
	if s.Remaining.Hours == 99 {
		t.Error("snapshot Remaining aliases the tracker value")
	}
}

func TestTrackerConnectionStatus(t *testing.T) {
	tr := NewTracker(time.Now(), Network{}, testConfig)
	tr.SetConnectionStatus(fakeConn{connected: true})

	if s := tr.Snapshot(time.Now()); !s.MQTTConnected {
		t.Error("MQTTConnected = false, want true")
	}
}

func TestFormatJSONFull(t *testing.T) {
	start := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	tr := NewTracker(start, Network{Hostname: "fishtank-pi", IP: "192.168.1.42"}, testConfig)
	tr.Update(logic.StateWaiting, false, &logic.Remaining{Hours: 4, Minutes: 30}, logic.EventCounts{Fed: 2, Due: 1})
	tr.RecordFed(start.Add(90 * time.Minute))

	data, err := FormatJSON(tr.Snapshot(start.Add(2 * time.Hour)))
	if err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, data)
	}
	if got["state"] != "WAITING" {
		t.Errorf("state = %v, want WAITING", got["state"])
	}
	if got["indicator_on"] != false {
		t.Errorf("indicator_on = %v, want false", got["indicator_on"])
	}
	if got["last_fed"] != "2026-03-14T09:30:00Z" {
		t.Errorf("last_fed = %v, want 2026-03-14T09:30:00Z", got["last_fed"])
	}
	if got["uptime_s"] != float64(7200) {
		t.Errorf("uptime_s = %v, want 7200", got["uptime_s"])
	}
	rem, ok := got["remaining"].(map[string]any)
	if !ok || rem["hours"] != float64(4) || rem["minutes"] != float64(30) {
		t.Errorf("remaining = %v, want 4h30m", got["remaining"])
	}
}

func TestFormatJSONOmitsEmpty(t *testing.T) {
	tr := NewTracker(time.Now(), Network{}, testConfig)
	data, err := FormatJSON(tr.Snapshot(time.Now()))
	if err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}
	for _, absent := range []string{`"last_fed"`, `"remaining"`, `"network"`} {
		if strings.Contains(string(data), absent) {
			t.Errorf("output contains %s for empty value:\n%s", absent, data)
		}
	}
}

func TestSnapshotConcurrentAccess(t *testing.T) {
	tr := NewTracker(time.Now(), Network{}, testConfig)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			tr.Update(logic.StateWaiting, false, &logic.Remaining{Hours: i}, logic.EventCounts{Fed: i})
		}
	}()
	for i := 0; i < 1000; i++ {
		tr.Snapshot(time.Now())
	}
	<-done
}
