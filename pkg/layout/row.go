package layout

import (
	"github.com/travigo/signboard/pkg/util"
)

// ComposeRow lays out left and right justified text in a row columns-1 wide.
// The right text is never truncated; when both do not fit with a separating
// space the left text is cut.
func ComposeRow(left string, right string, columns int) string {
	width := columns - 1
	if width <= 0 {
		return right
	}

	leftLength := util.RuneLength(left)
	rightLength := util.RuneLength(right)

	if right == "" {
		return util.PadRight(util.TrimString(left, width), width)
	}

	if leftLength == 0 {
		return util.PadLeft(right, width)
	}

	if leftLength+rightLength+1 > width {
		keep := width - rightLength - 1
		if keep <= 0 {
			return util.PadLeft(right, width)
		}

		return util.TrimString(left, keep) + " " + right
	}

	return left + util.PadLeft(right, width-leftLength)
}
