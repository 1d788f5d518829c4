// Package mqtt publishes feeder events and system diagnostics to a broker.
//
// The Publisher interface keeps the rest of the program decoupled from the
// paho client so tests can substitute a recorder.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sweeney/feed-reminder/internal/logic"
)

const (
	// Topic carries feeder state transitions (FED, FEED_DUE).
	Topic = "home/fishtank/feeder/events"
	// TopicSystem carries lifecycle and health messages.
	TopicSystem = "home/fishtank/feeder/system"
)

// Publisher sends feeder events to the broker.
type Publisher interface {
	Publish(event logic.Event) error
	PublishSystem(event SystemEvent) error
	Close() error
}

// ConnectionStatus reports broker connectivity for the status page.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent is a lifecycle or health message for TopicSystem.
// Exactly one of the optional blocks is set depending on Event.
type SystemEvent struct {
	Timestamp time.Time
	Event     string // STARTUP, SHUTDOWN, FAULT, HEARTBEAT
	Reason    string
	Config    *SystemConfig
	Heartbeat *HeartbeatInfo
	Network   *NetworkInfo

	// RawPayload, when non-nil, is published verbatim instead of the
	// formatted system payload. Used for retained status snapshots.
	RawPayload []byte

	// Retained marks the message for broker retention.
	Retained bool
}

// SystemConfig mirrors the runtime configuration in STARTUP messages.
type SystemConfig struct {
	IntervalHours   int    `json:"interval_hours"`
	IntervalMinutes int    `json:"interval_minutes"`
	PollMs          int64  `json:"poll_ms"`
	WaitMs          int64  `json:"wait_ms"`
	HeartbeatMs     int64  `json:"heartbeat_ms"`
	Broker          string `json:"broker,omitempty"`
}

// HeartbeatInfo summarizes liveness for HEARTBEAT messages.
type HeartbeatInfo struct {
	UptimeSeconds int64 `json:"uptime_s"`
	FedCount      int   `json:"fed_count"`
	DueCount      int   `json:"due_count"`
}

// NetworkInfo identifies the host on the home network.
type NetworkInfo struct {
	Hostname string `json:"hostname,omitempty"`
	IP       string `json:"ip,omitempty"`
}

// Payload is the JSON envelope for feeder event messages.
type Payload struct {
	Feeder FeederPayload `json:"feeder"`
}

// FeederPayload is the body of a feeder event message.
type FeederPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	State     string `json:"state"`
}

// SystemPayload is the JSON envelope for system messages.
type SystemPayload struct {
	Timestamp string         `json:"timestamp"`
	Event     string         `json:"event"`
	Reason    string         `json:"reason,omitempty"`
	Config    *SystemConfig  `json:"config,omitempty"`
	Heartbeat *HeartbeatInfo `json:"heartbeat,omitempty"`
	Network   *NetworkInfo   `json:"network,omitempty"`
}

// FormatPayload renders a feeder event as the wire JSON.
func FormatPayload(event logic.Event) ([]byte, error) {
	p := Payload{
		Feeder: FeederPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			State:     string(event.State),
		},
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return data, nil
}

// FormatSystemPayload renders a system event as the wire JSON. A RawPayload
// set on the event bypasses formatting entirely.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}
	p := SystemPayload{
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
		Event:     event.Event,
		Reason:    event.Reason,
		Config:    event.Config,
		Heartbeat: event.Heartbeat,
		Network:   event.Network,
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal system payload: %w", err)
	}
	return data, nil
}
