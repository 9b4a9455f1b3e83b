package timeutil

import (
	"fmt"
	"strings"
)

const (
	Minute int64 = 60
	Hour         = 60 * Minute
	Day          = 24 * Hour
	Week         = 7 * Day
	Month        = 30 * Day
	Year         = 365 * Day
)

// Calendar approximation: 30 day months, 365 day years
var unitSeconds = [7]int64{Year, Month, Week, Day, Hour, Minute, 1}

const DefaultMaxUnits = 6

type Component struct {
	Value int64
	Unit  int
}

func (c Component) Seconds() int64 {
	return c.Value * unitSeconds[c.Unit]
}

func UnitSeconds(unit int) int64 {
	return unitSeconds[unit]
}

type HumanizeOptions struct {
	MaxUnits int
	Short    bool
	Language *Language
}

// Decompose splits seconds into at most maxUnits non-zero components, coarsest first.
// Negative input is treated as its absolute value; zero yields no components.
func Decompose(seconds int64, maxUnits int) []Component {
	if seconds < 0 {
		seconds = -seconds
	}
	if maxUnits <= 0 {
		maxUnits = DefaultMaxUnits
	}

	var components []Component
	for unit, size := range unitSeconds {
		if len(components) == maxUnits {
			break
		}

		value := seconds / size
		if value == 0 {
			continue
		}

		components = append(components, Component{Value: value, Unit: unit})
		seconds -= value * size
	}

	return components
}

// HumanizeDuration renders seconds as e.g. "2 days, 3 hours and 1 minute" or, short, "2d 3h"
func HumanizeDuration(seconds int64, options HumanizeOptions) string {
	language := options.Language
	if language == nil {
		language = English
	}

	components := Decompose(seconds, options.MaxUnits)

	parts := make([]string, 0, len(components))
	for _, component := range components {
		names := language.Units[component.Unit]

		switch {
		case options.Short:
			parts = append(parts, fmt.Sprintf("%d%s", component.Value, names.Short))
		case component.Value == 1:
			parts = append(parts, fmt.Sprintf("%d %s", component.Value, names.Singular))
		default:
			parts = append(parts, fmt.Sprintf("%d %s", component.Value, names.Plural))
		}
	}

	if options.Short || len(parts) < 2 {
		return strings.Join(parts, " ")
	}

	last := len(parts) - 1
	return strings.Join(parts[:last], ", ") + " " + language.Conjunction + " " + parts[last]
}
