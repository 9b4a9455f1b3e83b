package board

import (
	"strings"
	"time"

	"github.com/travigo/signboard/pkg/timeutil"
)

// ServiceEntry is one upcoming waste collection
type ServiceEntry struct {
	Description   string
	NextDate      time.Time
	CountdownText string
}

// Countdown renders the time left until the collection compactly, e.g. "2d3h"
func (s ServiceEntry) Countdown(now time.Time, language *timeutil.Language) string {
	seconds := timeutil.SecondsUntil(s.NextDate, now)
	if seconds <= 0 {
		return language.Now
	}

	text := timeutil.HumanizeDuration(seconds, timeutil.HumanizeOptions{
		MaxUnits: 2,
		Short:    true,
		Language: language,
	})

	return strings.ReplaceAll(text, " ", "")
}

// DateLabel is the day/month shown next to the description, e.g. "3/6"
func (s ServiceEntry) DateLabel() string {
	return s.NextDate.Format("2/1")
}
