// Command feed-reminder runs the fish feeding reminder on a Raspberry Pi.
// An LED turns on when a feeding is due and stays on until the button is
// pressed; the countdown then restarts. State transitions are published to
// MQTT and a small status page is served on the home network.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sweeney/feed-reminder/internal/clock"
	"github.com/sweeney/feed-reminder/internal/gpio"
	"github.com/sweeney/feed-reminder/internal/logic"
	"github.com/sweeney/feed-reminder/internal/mqtt"
	"github.com/sweeney/feed-reminder/internal/status"
	"github.com/sweeney/feed-reminder/internal/web"
)

// networkEnvFile is written by the provisioning helper at boot with the
// host's network identity.
const networkEnvFile = "/run/pi-helper.env"

type config struct {
	hours      int
	minutes    int
	poll       time.Duration
	wait       time.Duration
	heartbeat  time.Duration
	broker     string
	pinLED     int
	pinButton  int
	printState bool
	httpAddr   string
}

func main() {
	var cfg config
	flag.IntVar(&cfg.hours, "hours", 6, "hours component of the feeding interval")
	flag.IntVar(&cfg.minutes, "minutes", 0, "minutes component of the feeding interval")
	flag.DurationVar(&cfg.poll, "poll", 250*time.Millisecond, "button poll interval while a feeding is due")
	flag.DurationVar(&cfg.wait, "wait", time.Minute, "sleep quantum between countdown checks")
	flag.DurationVar(&cfg.heartbeat, "heartbeat", 15*time.Minute, "heartbeat publish interval, 0 disables")
	flag.StringVar(&cfg.broker, "broker", "", "MQTT broker address (e.g. tcp://192.168.1.10:1883), empty disables MQTT")
	flag.IntVar(&cfg.pinLED, "pin-led", gpio.DefaultPinLED, "BCM pin driving the reminder LED")
	flag.IntVar(&cfg.pinButton, "pin-button", gpio.DefaultPinButton, "BCM pin reading the acknowledgment button")
	flag.BoolVar(&cfg.printState, "print-state", false, "log the countdown on every check")
	flag.StringVar(&cfg.httpAddr, "http", ":8080", "status page listen address, empty disables")
	flag.Parse()

	if err := run(cfg); err != nil {
		log.Fatalf("feed-reminder: %v", err)
	}
}

func run(cfg config) error {
	log.Printf("starting: interval %dh%02dm, poll %s, wait %s",
		cfg.hours, cfg.minutes, cfg.poll, cfg.wait)

	pins, err := gpio.NewRealPins(cfg.pinLED, cfg.pinButton)
	if err != nil {
		return fmt.Errorf("open gpio: %w", err)
	}
	defer pins.Close()

	clk := clock.NewMonotonic()
	start := clk.Now()
	network := readNetworkInfo()

	tracker := status.NewTracker(start, network, status.Config{
		IntervalHours:   cfg.hours,
		IntervalMinutes: cfg.minutes,
		PollMs:          cfg.poll.Milliseconds(),
		WaitMs:          cfg.wait.Milliseconds(),
		HeartbeatMs:     cfg.heartbeat.Milliseconds(),
		Broker:          cfg.broker,
		HTTPAddr:        cfg.httpAddr,
	})

	var pub mqtt.Publisher
	if cfg.broker != "" {
		real, err := mqtt.NewRealPublisher(cfg.broker)
		if err != nil {
			return err
		}
		defer real.Close()
		tracker.SetConnectionStatus(real)
		pub = real

		startup := mqtt.SystemEvent{
			Timestamp: clk.Now(),
			Event:     "STARTUP",
			Config: &mqtt.SystemConfig{
				IntervalHours:   cfg.hours,
				IntervalMinutes: cfg.minutes,
				PollMs:          cfg.poll.Milliseconds(),
				WaitMs:          cfg.wait.Milliseconds(),
				HeartbeatMs:     cfg.heartbeat.Milliseconds(),
				Broker:          cfg.broker,
			},
			Network: &mqtt.NetworkInfo{Hostname: network.Hostname, IP: network.IP},
		}
		if err := pub.PublishSystem(startup); err != nil {
			log.Printf("mqtt: publish startup: %v", err)
		}
	}

	if cfg.httpAddr != "" {
		srv, err := web.NewServer(cfg.httpAddr, tracker)
		if err != nil {
			return err
		}
		srv.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
		log.Printf("status page on %s", cfg.httpAddr)
	}

	ctrl, err := logic.New(logic.Interval{Hours: cfg.hours, Minutes: cfg.minutes}, pins, pins, start)
	if err != nil {
		return fmt.Errorf("init reminder: %w", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	loopErr := runLoop(ctrl, pub, tracker, clk, cfg, sig)

	// Leave a retained snapshot so the broker shows the last known state
	// even while the daemon is down.
	if pub != nil {
		shutdown := mqtt.SystemEvent{
			Timestamp: clk.Now(),
			Event:     "SHUTDOWN",
			Retained:  true,
		}
		if loopErr != nil {
			shutdown.Reason = loopErr.Error()
		}
		if raw, err := status.FormatJSON(tracker.Snapshot(clk.Now())); err == nil {
			shutdown.RawPayload = raw
		}
		if err := pub.PublishSystem(shutdown); err != nil {
			log.Printf("mqtt: publish shutdown: %v", err)
		}
	}
	return loopErr
}

// runLoop is the control loop: sample, act, sleep. A FEED_DUE transition
// skips the sleep so a button already held down is seen on the very next
// sample; otherwise the loop sleeps the poll interval while a feeding is
// due and the wait quantum while counting down.
func runLoop(ctrl *logic.Reminder, pub mqtt.Publisher, tracker *status.Tracker, clk clock.Clock, cfg config, sig <-chan os.Signal) error {
	for {
		in := logic.Input{Ticks: clk.NowTicks(), Time: clk.Now()}
		res, err := ctrl.Tick(in)
		if err != nil {
			err = fmt.Errorf("control tick: %w", err)
			if pub != nil {
				fault := mqtt.SystemEvent{Timestamp: in.Time, Event: "FAULT", Reason: err.Error()}
				if perr := pub.PublishSystem(fault); perr != nil {
					log.Printf("mqtt: publish fault: %v", perr)
				}
			}
			return err
		}

		if res.Event != nil {
			switch res.Event.Type {
			case logic.EventFed:
				log.Printf("feeding acknowledged")
				tracker.RecordFed(res.Event.Timestamp)
			case logic.EventFeedDue:
				log.Printf("feeding due")
			}
			if pub != nil {
				if perr := pub.Publish(*res.Event); perr != nil {
					log.Printf("mqtt: publish event: %v", perr)
				}
			}
		}
		tracker.Update(ctrl.State(), ctrl.IndicatorOn(), res.Remaining, ctrl.Counts())

		if cfg.printState && res.Remaining != nil {
			log.Print(res.Remaining)
		}

		if pub != nil {
			if hb := ctrl.CheckHeartbeat(in.Time, cfg.heartbeat); hb != nil {
				beat := mqtt.SystemEvent{
					Timestamp: hb.Timestamp,
					Event:     "HEARTBEAT",
					Heartbeat: &mqtt.HeartbeatInfo{
						UptimeSeconds: int64(hb.Uptime.Seconds()),
						FedCount:      hb.Counts.Fed,
						DueCount:      hb.Counts.Due,
					},
				}
				if perr := pub.PublishSystem(beat); perr != nil {
					log.Printf("mqtt: publish heartbeat: %v", perr)
				}
			}
		}

		if res.Event != nil && res.Event.Type == logic.EventFeedDue {
			continue
		}
		d := cfg.poll
		if res.Wait {
			d = cfg.wait
		}
		select {
		case s := <-sig:
			log.Printf("received %s, shutting down", s)
			return nil
		case <-clk.After(d):
		}
	}
}

// readNetworkInfo loads the host identity written by the provisioning
// helper, falling back to the process environment and the kernel hostname.
func readNetworkInfo() status.Network {
	vars, err := godotenv.Read(networkEnvFile)
	if err != nil {
		vars = map[string]string{}
	}
	get := func(key string) string {
		if v := vars[key]; v != "" {
			return v
		}
		return os.Getenv(key)
	}
	n := status.Network{Hostname: get("PI_HOSTNAME"), IP: get("PI_IP")}
	if n.Hostname == "" {
		if h, err := os.Hostname(); err == nil {
			n.Hostname = h
		}
	}
	return n
}
