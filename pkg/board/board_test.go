package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/travigo/signboard/pkg/timeutil"
)

func TestPayloadLen(t *testing.T) {
	var empty *Payload
	assert.Equal(t, 0, empty.Len())
	assert.True(t, empty.IsEmpty())

	payload := &Payload{
		Departures: map[Direction][]DepartureEntry{
			DirectionTwo:     {{LineID: "19"}},
			DirectionOne:     {{LineID: "17"}, {LineID: "18"}},
			DirectionUnknown: nil,
		},
	}

	assert.Equal(t, 3, payload.Len())
	assert.Equal(t, []Direction{DirectionUnknown, DirectionOne, DirectionTwo}, payload.Directions())
	assert.True(t, (&Payload{Departures: map[Direction][]DepartureEntry{DirectionOne: {}}}).IsEmpty())
}

func TestCacheStateAge(t *testing.T) {
	now := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Duration(0), CacheState{}.Age(now))
	assert.Equal(t, 42*time.Second, CacheState{FetchedAt: now.Add(-42 * time.Second)}.Age(now))
}

func TestGroupKey(t *testing.T) {
	assert.Equal(t, "20 CityB", DepartureEntry{LineID: "20", Destination: "CityB"}.GroupKey())
}

func TestServiceEntryCountdown(t *testing.T) {
	now := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	entry := ServiceEntry{NextDate: time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC)}

	assert.Equal(t, "2d1h", entry.Countdown(now, timeutil.English))
	assert.Equal(t, "5/6", entry.DateLabel())
	assert.Equal(t, "Nu", entry.Countdown(entry.NextDate, timeutil.Swedish))
}
