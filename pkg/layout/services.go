package layout

import (
	"time"

	"github.com/travigo/signboard/pkg/board"
	"github.com/travigo/signboard/pkg/timeutil"
	"github.com/travigo/signboard/pkg/util"
)

const DefaultFlashWithin = 24 * time.Hour

// ServiceComposer lists upcoming collections. When the next one is close the
// frame flashes: every other call returns no rows.
type ServiceComposer struct {
	Language    *timeutil.Language
	Flash       bool
	FlashWithin time.Duration

	dark bool
}

func (s *ServiceComposer) Compose(grid Grid, state board.CacheState, now time.Time) []string {
	language := s.Language
	if language == nil {
		language = timeutil.Swedish
	}

	var upcoming []board.ServiceEntry
	for _, service := range state.Payload.Services {
		if !service.NextDate.Before(now) {
			upcoming = append(upcoming, service)
		}
	}

	flashWithin := s.FlashWithin
	if flashWithin == 0 {
		flashWithin = DefaultFlashWithin
	}

	if s.Flash && len(upcoming) > 0 && upcoming[0].NextDate.Sub(now) < flashWithin {
		s.dark = !s.dark
		if s.dark {
			return nil
		}
	} else {
		s.dark = false
	}

	buffer := NewBuffer(grid.Rows)
	for _, service := range upcoming {
		left := service.Description + " " + util.PadRight(service.DateLabel(), 5)
		if !buffer.Append(left, service.Countdown(now, language)) {
			break
		}
	}

	return buffer.Compose(grid.Columns)
}
