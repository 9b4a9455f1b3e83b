package timeutil

import (
	"fmt"
	"strings"
)

type UnitNames struct {
	Singular string
	Plural   string
	Short    string
}

// Language holds every user visible word the boards produce themselves.
// Provider texts (destinations, deviations) are shown as delivered.
type Language struct {
	Code string

	// Ordered years, months, weeks, days, hours, minutes, seconds
	Units [7]UnitNames

	Conjunction string
	Now         string

	MinutesLong string
	// Appended once after a condensed list such as "2,7m"
	MinutesSuffix string
	DataAge       string
	Error         string
}

var English = &Language{
	Code: "en",
	Units: [7]UnitNames{
		{"year", "years", "y"},
		{"month", "months", "mo"},
		{"week", "weeks", "w"},
		{"day", "days", "d"},
		{"hour", "hours", "h"},
		{"minute", "minutes", "m"},
		{"second", "seconds", "s"},
	},
	Conjunction:   "and",
	Now:           "Now",
	MinutesLong:   "%d min",
	MinutesSuffix: "m",
	DataAge:       "Data age: %ds",
	Error:         "Error",
}

var Swedish = &Language{
	Code: "sv",
	Units: [7]UnitNames{
		{"år", "år", "år"},
		{"månad", "månader", "mån"},
		{"vecka", "veckor", "v"},
		{"dag", "dagar", "d"},
		{"timme", "timmar", "h"},
		{"minut", "minuter", "m"},
		{"sekund", "sekunder", "s"},
	},
	Conjunction:   "och",
	Now:           "Nu",
	MinutesLong:   "%d min",
	MinutesSuffix: "m",
	DataAge:       "Data age: %ds",
	Error:         "Fel",
}

var languages = map[string]*Language{
	"en":      English,
	"english": English,
	"sv":      Swedish,
	"swedish": Swedish,
}

func LanguageByCode(code string) (*Language, error) {
	if code == "" {
		return Swedish, nil
	}

	language, ok := languages[strings.ToLower(code)]
	if !ok {
		return nil, fmt.Errorf("unknown language %q", code)
	}

	return language, nil
}
