package activity

import (
	"time"

	"github.com/travigo/signboard/pkg/timeutil"
)

// Trigger names the condition that opened the gate
type Trigger int

const (
	TriggerNone Trigger = iota
	TriggerStartup
	TriggerActiveHours
	TriggerButtonPress
)

func (t Trigger) String() string {
	switch t {
	case TriggerStartup:
		return "startup"
	case TriggerActiveHours:
		return "active-hours"
	case TriggerButtonPress:
		return "button-press"
	default:
		return "none"
	}
}

// Evaluate decides whether the display should render at now. The three triggers
// are independent and any one of them opens the gate; the first holding one is returned.
// An invalid active hours expression only disables that trigger, its error is returned
// so that it can be reported.
func Evaluate(now time.Time, processStart time.Time, activeHours string, lastPress time.Time, grace time.Duration) (Trigger, error) {
	if now.Sub(processStart) < grace {
		return TriggerStartup, nil
	}

	var scheduleErr error
	if activeHours != "" {
		active, err := timeutil.IsWithinActiveWindow(activeHours, grace, now)
		if err != nil {
			scheduleErr = err
		} else if active {
			return TriggerActiveHours, nil
		}
	}

	if !lastPress.IsZero() && now.Sub(lastPress) < grace {
		return TriggerButtonPress, scheduleErr
	}

	return TriggerNone, scheduleErr
}

// IsActive is Evaluate reduced to a boolean
func IsActive(now time.Time, processStart time.Time, activeHours string, lastPress time.Time, grace time.Duration) (bool, error) {
	trigger, err := Evaluate(now, processStart, activeHours, lastPress, grace)
	return trigger != TriggerNone, err
}
