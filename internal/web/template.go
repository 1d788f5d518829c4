package web

import (
	"fmt"
	"time"

	"github.com/sweeney/feed-reminder/internal/logic"
	"github.com/sweeney/feed-reminder/internal/status"
)

// pageData is the template input, with everything pre-formatted so the
// template stays free of logic.
type pageData struct {
	NeedsFeeding bool
	StateLabel   string
	Remaining    string
	LastFed      string
	FedCount     int
	DueCount     int
	Uptime       string
	Hostname     string
	Interval     string
	MQTT         string
	Generated    string
}

func newPageData(s status.Snapshot) pageData {
	d := pageData{
		NeedsFeeding: s.State == logic.StateNeedsFeeding,
		FedCount:     s.Counts.Fed,
		DueCount:     s.Counts.Due,
		Uptime:       formatDuration(s.Uptime()),
		Hostname:     s.Network.Hostname,
		Interval:     fmt.Sprintf("%dh %02dm", s.Config.IntervalHours, s.Config.IntervalMinutes),
		Generated:    s.Now.Format("15:04:05"),
	}
	if d.NeedsFeeding {
		d.StateLabel = "Feed the fish!"
	} else {
		d.StateLabel = "Fed"
	}
	if s.Remaining != nil {
		d.Remaining = s.Remaining.String()
	}
	if !s.LastFed.IsZero() {
		d.LastFed = s.LastFed.Format("Mon 15:04")
	} else {
		d.LastFed = "not yet"
	}
	if s.MQTTConnected {
		d.MQTT = "connected"
	} else {
		d.MQTT = "offline"
	}
	return d
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h >= 24 {
		return fmt.Sprintf("%dd %dh %dm", h/24, h%24, m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

const statusPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="30">
<title>Fish Feeder</title>
<style>
body { font-family: sans-serif; max-width: 28em; margin: 2em auto; padding: 0 1em; background: #f4f7f6; color: #223; }
h1 { font-size: 1.3em; }
.banner { padding: 1em; border-radius: 8px; font-size: 1.4em; text-align: center; }
.due { background: #e8a33d; color: #402800; }
.ok { background: #3d9970; color: #fff; }
table { width: 100%; margin-top: 1.5em; border-collapse: collapse; }
td { padding: 0.4em 0; border-bottom: 1px solid #dde; }
td:last-child { text-align: right; }
footer { margin-top: 2em; font-size: 0.8em; color: #889; }
</style>
</head>
<body>
<h1>Fish Feeder</h1>
{{if .NeedsFeeding}}<div class="banner due">{{.StateLabel}}</div>
{{else}}<div class="banner ok">{{.StateLabel}}</div>{{end}}
<table>
{{if .Remaining}}<tr><td>Next feeding in</td><td>{{.Remaining}}</td></tr>{{end}}
<tr><td>Last fed</td><td>{{.LastFed}}</td></tr>
<tr><td>Feedings</td><td>{{.FedCount}}</td></tr>
<tr><td>Reminders</td><td>{{.DueCount}}</td></tr>
<tr><td>Interval</td><td>{{.Interval}}</td></tr>
<tr><td>Uptime</td><td>{{.Uptime}}</td></tr>
<tr><td>MQTT</td><td>{{.MQTT}}</td></tr>
</table>
<footer>{{if .Hostname}}{{.Hostname}} &middot; {{end}}updated {{.Generated}}</footer>
</body>
</html>
`
