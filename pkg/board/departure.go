package board

import (
	"fmt"
	"time"
)

type Direction int

const (
	DirectionUnknown Direction = 0
	DirectionOne     Direction = 1
	DirectionTwo     Direction = 2
)

type Deviation struct {
	Severity int
	Text     string
}

type DepartureEntry struct {
	LineID      string
	Destination string
	Direction   Direction

	ScheduledAt time.Time

	Deviations []Deviation
}

// GroupKey identifies the overflow bucket a departure belongs to
func (d DepartureEntry) GroupKey() string {
	return fmt.Sprintf("%s %s", d.LineID, d.Destination)
}
