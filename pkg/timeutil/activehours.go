package timeutil

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

var ErrInvalidScheduleExpression = errors.New("invalid schedule expression")

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

var daySets = map[string]string{
	"weekdays": "1-5",
	"weekday":  "1-5",
	"weekends": "0,6",
	"weekend":  "0,6",
	"daily":    "*",
	"everyday": "*",
}

// ParseActiveHours accepts a 5 field cron expression, an @descriptor, or the
// shorthand "<hours> [<days>]" such as "7-9,18-20 weekdays".
func ParseActiveHours(expression string) (cron.Schedule, error) {
	expression = strings.TrimSpace(expression)
	fields := strings.Fields(expression)

	cronExpression := expression
	switch {
	case len(fields) == 0:
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidScheduleExpression)
	case strings.HasPrefix(fields[0], "@"):
	case len(fields) == 1:
		cronExpression = fmt.Sprintf("* %s * * *", fields[0])
	case len(fields) == 2:
		days, ok := daySets[strings.ToLower(fields[1])]
		if !ok {
			days = fields[1]
		}
		cronExpression = fmt.Sprintf("* %s * * %s", fields[0], days)
	}

	schedule, err := scheduleParser.Parse(cronExpression)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidScheduleExpression, expression, err)
	}

	return schedule, nil
}

// IsWithinActiveWindow reports whether the schedule next matches no later than lookahead from now.
// A match anywhere in the current minute counts, even when now is mid-minute.
func IsWithinActiveWindow(expression string, lookahead time.Duration, now time.Time) (bool, error) {
	schedule, err := ParseActiveHours(expression)
	if err != nil {
		return false, err
	}

	next := schedule.Next(now.Truncate(time.Minute).Add(-time.Second))
	if next.IsZero() {
		return false, nil
	}

	return !next.After(now.Add(lookahead)), nil
}
