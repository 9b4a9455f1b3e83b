package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// ISODateTimeLayout is the zone-less datetime format used by the departure APIs
const ISODateTimeLayout = "2006-01-02T15:04:05"

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

var localLayouts = []string{
	ISODateTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseInstant reads unix seconds, RFC3339 or a zone-less ISO datetime (interpreted in loc)
func ParseInstant(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidTimestamp)
	}

	if seconds, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(seconds, 0).In(loc), nil
	}
	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		return time.Unix(0, int64(seconds*float64(time.Second))).In(loc), nil
	}

	for _, layout := range zonedLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	for _, layout := range localLayouts {
		if parsed, err := time.ParseInLocation(layout, value, loc); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}

// Elapsed returns the whole seconds between instant and now.
// With absolute false the sign is kept, negative meaning instant lies in the future.
func Elapsed(instant time.Time, now time.Time, absolute bool) int64 {
	seconds := int64(now.Sub(instant) / time.Second)
	if absolute && seconds < 0 {
		return -seconds
	}

	return seconds
}

// ElapsedString is Elapsed for a textual instant
func ElapsedString(value string, now time.Time, absolute bool) (int64, error) {
	instant, err := ParseInstant(value, now.Location())
	if err != nil {
		return 0, err
	}

	return Elapsed(instant, now, absolute), nil
}

// SecondsUntil is the signed number of seconds from now until instant
func SecondsUntil(instant time.Time, now time.Time) int64 {
	return -Elapsed(instant, now, false)
}
