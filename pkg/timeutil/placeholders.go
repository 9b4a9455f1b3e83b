package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// PlaceholderFunc formats the numeric argument of a !name(arg) placeholder
type PlaceholderFunc func(arg int64, now time.Time, language *Language) string

var placeholderPattern = regexp.MustCompile(`!([a-z_]+)\((-?\d+)\)`)

var placeholders = map[string]PlaceholderFunc{
	"tdiff": func(unix int64, now time.Time, _ *Language) string {
		return strconv.FormatInt(unix-now.Unix(), 10)
	},
	"tdiff_text": func(unix int64, now time.Time, language *Language) string {
		return HumanizeDuration(unix-now.Unix(), HumanizeOptions{MaxUnits: 2, Language: language})
	},
	"tdiff_short": func(unix int64, now time.Time, language *Language) string {
		return HumanizeDuration(unix-now.Unix(), HumanizeOptions{MaxUnits: 2, Short: true, Language: language})
	},
	"date": func(unix int64, now time.Time, _ *Language) string {
		date := time.Unix(unix, 0).In(now.Location())
		return fmt.Sprintf("%d/%d", date.Day(), int(date.Month()))
	},
}

// ExpandPlaceholders substitutes every known !name(unix) token in line.
// Unknown names are left untouched.
func ExpandPlaceholders(line string, now time.Time, language *Language) string {
	return placeholderPattern.ReplaceAllStringFunc(line, func(token string) string {
		match := placeholderPattern.FindStringSubmatch(token)

		format, ok := placeholders[match[1]]
		if !ok {
			return token
		}

		arg, err := strconv.ParseInt(match[2], 10, 64)
		if err != nil {
			return token
		}

		return format(arg, now, language)
	})
}
