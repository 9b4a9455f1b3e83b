package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	iso8601 "github.com/senseyeio/duration"
	"gopkg.in/yaml.v3"
)

var ErrInvalidDuration = errors.New("invalid duration")

var durationReference = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseDuration accepts Go durations ("2m30s"), ISO-8601 durations ("PT2M") and bare seconds ("120")
func ParseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidDuration)
	}

	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		return time.Duration(seconds * float64(time.Second)), nil
	}

	if strings.HasPrefix(strings.ToUpper(value), "P") {
		isoDuration, err := iso8601.ParseISO8601(strings.ToUpper(value))
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidDuration, value, err)
		}

		return isoDuration.Shift(durationReference).Sub(durationReference), nil
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, value)
	}

	return duration, nil
}

// Duration is a time.Duration readable from YAML in any ParseDuration form
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseDuration(node.Value)
	if err != nil {
		return err
	}

	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
