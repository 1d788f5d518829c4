package logic

import "time"

// Ticks is a monotonic millisecond counter. It is deliberately 32 bits wide:
// the tick source wraps at 2^32 ms (~49.7 days) and all elapsed-time math
// must go through TicksDiff rather than naive subtraction.
type Ticks uint32

// TicksDiff returns the forward duration from earlier to later. The
// subtraction is modular, so a counter that wrapped between the two samples
// still yields the correct elapsed time as long as the real span is under
// the counter period.
func TicksDiff(later, earlier Ticks) time.Duration {
	return time.Duration(later-earlier) * time.Millisecond
}
