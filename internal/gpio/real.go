//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealPins accesses actual hardware through the Linux GPIO character device.
type RealPins struct {
	chip   *gpiocdev.Chip
	led    *gpiocdev.Line
	button *gpiocdev.Line
}

// NewRealPins requests the indicator and button lines. The LED line is
// driven high immediately: the power-up contract is "reminder pending", and
// claiming the line already at that level avoids a visible blink before the
// controller takes over.
func NewRealPins(pinLED, pinButton int) (*RealPins, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	led, err := chip.RequestLine(pinLED, gpiocdev.AsOutput(1))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request LED pin %d: %w", pinLED, err)
	}

	// Pull-down to match the button wiring (switch to 3V3) and the Pi boot
	// defaults.
	button, err := chip.RequestLine(pinButton, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		led.Close()
		chip.Close()
		return nil, fmt.Errorf("request button pin %d: %w", pinButton, err)
	}

	return &RealPins{
		chip:   chip,
		led:    led,
		button: button,
	}, nil
}

// Set drives the indicator line.
func (p *RealPins) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := p.led.SetValue(v); err != nil {
		return fmt.Errorf("set LED pin: %w", err)
	}
	return nil
}

// Read returns the logical button level: raw high = pressed.
func (p *RealPins) Read() (bool, error) {
	raw, err := p.button.Value()
	if err != nil {
		return false, fmt.Errorf("read button pin: %w", err)
	}
	return raw != 0, nil
}

// Close releases GPIO resources. The LED line is released without being
// re-driven, so the indicator preserves its last level across a clean stop;
// the button line is restored to boot defaults (input with pull-down).
func (p *RealPins) Close() error {
	var errs []error

	if p.led != nil {
		if err := p.led.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close LED pin: %w", err))
		}
	}
	if p.button != nil {
		if err := p.button.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure button pin: %w", err))
		}
		if err := p.button.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button pin: %w", err))
		}
	}
	if p.chip != nil {
		if err := p.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
