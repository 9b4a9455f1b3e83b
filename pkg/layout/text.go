package layout

import (
	"time"

	"github.com/travigo/signboard/pkg/board"
	"github.com/travigo/signboard/pkg/timeutil"
)

// TextComposer shows the lines of a text file with placeholders expanded
type TextComposer struct {
	Language *timeutil.Language
}

func (t *TextComposer) Compose(grid Grid, state board.CacheState, now time.Time) []string {
	buffer := NewBuffer(grid.Rows)

	for _, line := range state.Payload.Lines {
		if !buffer.Append(timeutil.ExpandPlaceholders(line, now, t.Language), "") {
			break
		}
	}

	return buffer.Compose(grid.Columns)
}
