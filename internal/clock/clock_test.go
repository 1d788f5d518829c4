package clock

import (
	"testing"
	"time"

	"github.com/sweeney/feed-reminder/internal/logic"
)

func TestMonotonicTicksAdvance(t *testing.T) {
	c := NewMonotonic()

	t1 := c.NowTicks()
	time.Sleep(5 * time.Millisecond)
	t2 := c.NowTicks()

	d := logic.TicksDiff(t2, t1)
	if d < 5*time.Millisecond || d > time.Second {
		t.Errorf("elapsed between samples: %v, want >= 5ms and sane", d)
	}
}

func TestMonotonicAfterFires(t *testing.T) {
	c := NewMonotonic()

	select {
	case <-c.After(time.Millisecond):
	case <-time.After(time.Second):
		t.Fatal("After(1ms) did not fire within 1s")
	}
}

func TestFakeScript(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFake(base, []logic.Ticks{0, 1000, 2000})

	want := []logic.Ticks{0, 1000, 2000, 2000} // last repeats
	for i, w := range want {
		if got := f.NowTicks(); got != w {
			t.Errorf("tick %d: got %d, want %d", i, got, w)
		}
	}

	if got := f.Now(); !got.Equal(base.Add(2 * time.Second)) {
		t.Errorf("Now: got %v, want base+2s", got)
	}
}

func TestFakeNowBeforeFirstTick(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFake(base, nil)

	if !f.Now().Equal(base) {
		t.Errorf("Now before any tick: got %v, want base", f.Now())
	}
}

func TestFakeAfterRecordsWaits(t *testing.T) {
	f := NewFake(time.Time{}, nil)

	ch := f.After(250 * time.Millisecond)
	f.After(time.Minute)

	if len(f.Waits) != 2 {
		t.Fatalf("expected 2 recorded waits, got %d", len(f.Waits))
	}
	if f.Waits[0] != 250*time.Millisecond || f.Waits[1] != time.Minute {
		t.Errorf("waits: got %v", f.Waits)
	}

	// The returned channel is test-controlled.
	go func() { f.Step <- time.Time{} }()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("Step send did not reach the After channel")
	}
}
