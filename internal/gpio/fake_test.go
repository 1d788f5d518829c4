package gpio

import (
	"errors"
	"testing"
)

func TestFakePinsRead(t *testing.T) {
	f := NewFakePins([]bool{false, true, false})

	want := []bool{false, true, false, false} // last sample repeats
	for i, w := range want {
		pressed, err := f.Read()
		if err != nil {
			t.Fatalf("read %d: unexpected error: %v", i, err)
		}
		if pressed != w {
			t.Errorf("read %d: got %v, want %v", i, pressed, w)
		}
	}
}

func TestFakePinsNoSamples(t *testing.T) {
	f := NewFakePins(nil)

	if _, err := f.Read(); err == nil {
		t.Error("expected error with no samples")
	}
}

func TestFakePinsReadError(t *testing.T) {
	f := NewFakePins([]bool{true})
	f.ReadError = errors.New("simulated error")

	if _, err := f.Read(); err == nil {
		t.Error("expected error to be returned")
	}
}

func TestFakePinsSetRecordsWrites(t *testing.T) {
	f := NewFakePins(nil)

	f.Set(true)
	f.Set(false)
	f.Set(true)

	if !f.LED {
		t.Error("LED should reflect the last write")
	}
	want := []bool{true, false, true}
	if len(f.Writes) != len(want) {
		t.Fatalf("expected %d writes, got %d", len(want), len(f.Writes))
	}
	for i, w := range want {
		if f.Writes[i] != w {
			t.Errorf("write %d: got %v, want %v", i, f.Writes[i], w)
		}
	}
}

func TestFakePinsSetError(t *testing.T) {
	f := NewFakePins(nil)
	f.LED = true
	f.SetError = errors.New("simulated error")

	if err := f.Set(false); err == nil {
		t.Error("expected error to be returned")
	}
	if !f.LED {
		t.Error("LED should be unchanged after a failed Set")
	}
	if len(f.Writes) != 0 {
		t.Errorf("failed Set should not be recorded, got %d writes", len(f.Writes))
	}
}

func TestFakePinsClose(t *testing.T) {
	f := NewFakePins([]bool{true})

	if f.Closed {
		t.Error("should not be closed initially")
	}
	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}
}

func TestFakePinsReset(t *testing.T) {
	f := NewFakePins([]bool{true, false})

	f.Read()
	f.Set(true)
	f.Close()

	f.Reset()

	if pressed, _ := f.Read(); !pressed {
		t.Error("after reset: expected first sample again")
	}
	if f.LED || f.Writes != nil || f.Closed {
		t.Error("after reset: recorded state should be cleared")
	}
}
