package gpio

import "errors"

// FakePins is a test double with scripted button levels and a recorded
// indicator line.
type FakePins struct {
	// Samples contains scripted button levels (true = pressed).
	// Each call to Read() consumes the next sample.
	Samples []bool

	// index tracks current position in Samples
	index int

	// LED is the level the indicator line was last driven to.
	LED bool

	// Writes records every level driven to the indicator line.
	Writes []bool

	// SetError, if set, will be returned by Set()
	SetError error

	// ReadError, if set, will be returned by Read()
	ReadError error

	// Closed tracks if Close was called
	Closed bool
}

// NewFakePins creates a FakePins with the given button samples.
func NewFakePins(samples []bool) *FakePins {
	return &FakePins{Samples: samples}
}

// Set records the indicator level.
func (f *FakePins) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.LED = on
	f.Writes = append(f.Writes, on)
	return nil
}

// Read returns the next scripted button sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakePins) Read() (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}

	if len(f.Samples) == 0 {
		return false, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample, nil
}

// Close marks the pins as closed.
func (f *FakePins) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the button script and clears recorded state.
func (f *FakePins) Reset() {
	f.index = 0
	f.LED = false
	f.Writes = nil
	f.Closed = false
}
