package status

import (
	"encoding/json"
	"fmt"
	"time"
)

type jsonRemaining struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

type jsonCounts struct {
	Fed int `json:"fed"`
	Due int `json:"due"`
}

type jsonNetwork struct {
	Hostname string `json:"hostname,omitempty"`
	IP       string `json:"ip,omitempty"`
}

type jsonConfig struct {
	IntervalHours   int    `json:"interval_hours"`
	IntervalMinutes int    `json:"interval_minutes"`
	PollMs          int64  `json:"poll_ms"`
	WaitMs          int64  `json:"wait_ms"`
	HeartbeatMs     int64  `json:"heartbeat_ms"`
	Broker          string `json:"broker,omitempty"`
	HTTPAddr        string `json:"http_addr,omitempty"`
}

type jsonSnapshot struct {
	Timestamp     string         `json:"timestamp"`
	State         string         `json:"state"`
	IndicatorOn   bool           `json:"indicator_on"`
	LastFed       string         `json:"last_fed,omitempty"`
	Remaining     *jsonRemaining `json:"remaining,omitempty"`
	Counts        jsonCounts     `json:"counts"`
	UptimeSeconds int64          `json:"uptime_s"`
	MQTTConnected bool           `json:"mqtt_connected"`
	Network       *jsonNetwork   `json:"network,omitempty"`
	Config        jsonConfig     `json:"config"`
}

// FormatJSON renders a snapshot for the /status.json endpoint and for
// retained shutdown snapshots.
func FormatJSON(s Snapshot) ([]byte, error) {
	out := jsonSnapshot{
		Timestamp:     s.Now.UTC().Format(time.RFC3339),
		State:         string(s.State),
		IndicatorOn:   s.IndicatorOn,
		Counts:        jsonCounts{Fed: s.Counts.Fed, Due: s.Counts.Due},
		UptimeSeconds: int64(s.Uptime().Seconds()),
		MQTTConnected: s.MQTTConnected,
		Config: jsonConfig{
			IntervalHours:   s.Config.IntervalHours,
			IntervalMinutes: s.Config.IntervalMinutes,
			PollMs:          s.Config.PollMs,
			WaitMs:          s.Config.WaitMs,
			HeartbeatMs:     s.Config.HeartbeatMs,
			Broker:          s.Config.Broker,
			HTTPAddr:        s.Config.HTTPAddr,
		},
	}
	if !s.LastFed.IsZero() {
		out.LastFed = s.LastFed.UTC().Format(time.RFC3339)
	}
	if s.Remaining != nil {
		out.Remaining = &jsonRemaining{Hours: s.Remaining.Hours, Minutes: s.Remaining.Minutes}
	}
	if s.Network.Hostname != "" || s.Network.IP != "" {
		out.Network = &jsonNetwork{Hostname: s.Network.Hostname, IP: s.Network.IP}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}
