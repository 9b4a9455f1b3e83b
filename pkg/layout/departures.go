package layout

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/travigo/signboard/pkg/board"
	"github.com/travigo/signboard/pkg/timeutil"
	"github.com/travigo/signboard/pkg/util"
)

const (
	DefaultPreferredCap   = 3
	DefaultAlertThreshold = 3
	overflowValues        = 2
)

// DepartureComposer renders the preferred direction in full, then a single
// alert or data age row, then condensed rows for everything else.
type DepartureComposer struct {
	PreferredDirection board.Direction
	PreferredCap       int
	AlertThreshold     int

	Language *timeutil.Language
}

type overflowGroup struct {
	key     string
	minutes []int64
}

// condensed joins bare minute counts and appends the unit once, so 2 and 7
// become "2,7m". A departure under a minute shows the now word in place and
// the unit is only appended when the list ends on a number.
func (g *overflowGroup) condensed(language *timeutil.Language) string {
	values := make([]string, len(g.minutes))
	for i, minutes := range g.minutes {
		if minutes == 0 {
			values[i] = language.Now
			continue
		}
		values[i] = strconv.FormatInt(minutes, 10)
	}

	text := strings.Join(values, ",")
	if last := g.minutes[len(g.minutes)-1]; last != 0 {
		text += language.MinutesSuffix
	}

	return text
}

func (d *DepartureComposer) language() *timeutil.Language {
	if d.Language == nil {
		return timeutil.Swedish
	}
	return d.Language
}

func (d *DepartureComposer) countdown(secondsUntil int64, format string) string {
	minutes := secondsUntil / 60
	if minutes == 0 {
		return d.language().Now
	}

	return fmt.Sprintf(format, minutes)
}

func (d *DepartureComposer) Compose(grid Grid, state board.CacheState, now time.Time) []string {
	buffer := NewBuffer(grid.Rows)
	language := d.language()

	var alerts []string
	var groups []*overflowGroup
	groupsByKey := map[string]*overflowGroup{}
	preferredShown := 0

	for _, direction := range state.Payload.Directions() {
		for _, departure := range state.Payload.Departures[direction] {
			secondsUntil := timeutil.SecondsUntil(departure.ScheduledAt, now)
			if secondsUntil < 0 {
				continue
			}

			for _, deviation := range departure.Deviations {
				if deviation.Severity > d.AlertThreshold {
					alerts = append(alerts, deviation.Text)
				}
			}

			if direction == d.PreferredDirection {
				if preferredShown < d.PreferredCap {
					buffer.Append(departure.GroupKey(), d.countdown(secondsUntil, language.MinutesLong))
					preferredShown++
				}
				continue
			}

			key := departure.GroupKey()
			group, ok := groupsByKey[key]
			if !ok {
				group = &overflowGroup{key: key}
				groupsByKey[key] = group
				groups = append(groups, group)
			}
			if len(group.minutes) < overflowValues {
				group.minutes = append(group.minutes, secondsUntil/60)
			}
		}
	}

	alerts = util.RemoveDuplicateStrings(alerts, nil)
	if len(alerts) > 0 {
		buffer.Append(strings.Join(alerts, ", "), "")
	} else {
		age := int64(state.Age(now) / time.Second)
		buffer.Append("", fmt.Sprintf(language.DataAge, age))
	}

	if len(groups) > 0 && buffer.Len()+len(groups) < grid.Rows {
		buffer.Blank()
	}

	for _, group := range groups {
		if !buffer.Append(group.key, group.condensed(language)) {
			break
		}
	}

	return buffer.Compose(grid.Columns)
}
