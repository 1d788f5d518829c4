// Package gpio provides the indicator output and button input with hardware
// abstraction. The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Pins drives the indicator LED and reads the acknowledgment button.
// It satisfies logic.Output and logic.Button.
type Pins interface {
	// Set drives the indicator line: true = LED on.
	Set(on bool) error

	// Read returns the logical button level: true = pressed.
	// The button is wired active-high with a pull-down, so no inversion
	// is applied; mechanical bounce is absorbed by the loop's poll pacing.
	Read() (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// Default pin assignments (BCM numbering).
const (
	DefaultPinLED    = 17 // reminder indicator, via 220R to ground
	DefaultPinButton = 27 // momentary push button to 3V3
)
