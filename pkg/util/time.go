package util

import (
	"time"
)

// AtClock returns date at hour:minute local to the date's location
func AtClock(date time.Time, hour int, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}
