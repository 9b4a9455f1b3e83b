package board

import (
	"sort"
	"time"
)

// Payload is the result of one successful fetch. A payload only ever carries one
// board variant's data and is never modified after the fetch that produced it.
type Payload struct {
	Departures map[Direction][]DepartureEntry
	Services   []ServiceEntry
	Lines      []string
}

func (p *Payload) Len() int {
	if p == nil {
		return 0
	}

	count := len(p.Services) + len(p.Lines)
	for _, departures := range p.Departures {
		count += len(departures)
	}

	return count
}

func (p *Payload) IsEmpty() bool {
	return p.Len() == 0
}

// Directions returns the directions present in the payload in ascending order
func (p *Payload) Directions() []Direction {
	if p == nil {
		return nil
	}

	directions := make([]Direction, 0, len(p.Departures))
	for direction := range p.Departures {
		directions = append(directions, direction)
	}
	sort.Slice(directions, func(a, b int) bool {
		return directions[a] < directions[b]
	})

	return directions
}

// CacheState is the tracker owned view of the last successful fetch.
// A zero FetchedAt means nothing has been fetched yet.
type CacheState struct {
	Payload   *Payload
	FetchedAt time.Time
}

func (c CacheState) HasPayload() bool {
	return c.Payload != nil
}

// Age is how long ago the payload was fetched, zero if never
func (c CacheState) Age(now time.Time) time.Duration {
	if c.FetchedAt.IsZero() {
		return 0
	}

	return now.Sub(c.FetchedAt)
}
