package activity

import (
	"sync/atomic"
	"time"
)

// Window carries the inputs of the activity gate. The last button press is the
// only field written concurrently (by button handlers) and is stored atomically.
type Window struct {
	ProcessStart time.Time
	ActiveHours  string
	GracePeriod  time.Duration

	lastPress atomic.Int64
}

func NewWindow(processStart time.Time, activeHours string, grace time.Duration) *Window {
	return &Window{
		ProcessStart: processStart,
		ActiveHours:  activeHours,
		GracePeriod:  grace,
	}
}

// Press records a button press, safe to call from any goroutine
func (w *Window) Press(at time.Time) {
	w.lastPress.Store(at.UnixNano())
}

// LastPress returns the most recent press, zero if the button was never pressed
func (w *Window) LastPress() time.Time {
	nanos := w.lastPress.Load()
	if nanos == 0 {
		return time.Time{}
	}

	return time.Unix(0, nanos)
}

func (w *Window) Evaluate(now time.Time) (Trigger, error) {
	return Evaluate(now, w.ProcessStart, w.ActiveHours, w.LastPress(), w.GracePeriod)
}
