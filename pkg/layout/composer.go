package layout

import (
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"
	"github.com/travigo/signboard/pkg/board"
	"github.com/travigo/signboard/pkg/timeutil"
)

// Composer turns the cached state into the rows of one frame
type Composer interface {
	Compose(grid Grid, state board.CacheState, now time.Time) []string
}

// ErrorRows word wraps a failure message over the grid, used while no data has been fetched yet
func ErrorRows(grid Grid, err error, language *timeutil.Language) []string {
	if language == nil {
		language = timeutil.English
	}

	message := language.Error
	if err != nil {
		message += ": " + err.Error()
	}

	buffer := NewBuffer(grid.Rows)
	for _, line := range strings.Split(wordwrap.String(message, grid.Columns-1), "\n") {
		if !buffer.Append(line, "") {
			break
		}
	}

	return buffer.Compose(grid.Columns)
}
