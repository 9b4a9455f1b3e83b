package fetcher

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/signboard/pkg/board"
	"github.com/travigo/signboard/pkg/timeutil"
	"github.com/travigo/signboard/pkg/util"
	"golang.org/x/exp/slices"
	"golang.org/x/text/unicode/norm"
)

const (
	DefaultSRVBaseURL = "https://www.srvatervinning.se/sophamtning/privat/hamtinformation-och-driftstorningar"
	srvTarget         = "12.d9ec095172e6db9637d4bf6"

	// Collections are assumed to happen in the morning
	srvCollectionHour = 9
)

var swedishMonths = []string{
	"januari", "februari", "mars", "april", "maj", "juni",
	"juli", "augusti", "september", "oktober", "november", "december",
}

var srvDatePattern = regexp.MustCompile(`^(?P<weekday>\S+)\s+(?P<day>\d{1,2})\s+(?P<month>\S+)$`)

var DefaultDescriptionReplacements = map[string]string{
	"Sortera hemma, fyrfack k": "K",
}

// SRVCollections fetches the waste collection schedule for one street/item
type SRVCollections struct {
	Client *Client

	BaseURL    string
	StreetName string
	Item       string

	DescriptionReplacements map[string]string

	Language *timeutil.Language
	Clock    func() time.Time
}

func (s *SRVCollections) Name() string {
	return fmt.Sprintf("srv-collections/%s", s.StreetName)
}

type srvResponse struct {
	Services *[]srvService `json:"services"`
}

type srvService struct {
	ServiceDescription string `json:"serviceDescription"`
	CycleDates         []struct {
		Date string `json:"Date"`
	} `json:"cycleDates"`
}

func (s *SRVCollections) requestURL() string {
	baseURL := s.BaseURL
	if baseURL == "" {
		baseURL = DefaultSRVBaseURL
	}

	query := url.Values{}
	query.Set("sv.target", srvTarget)
	query.Set(fmt.Sprintf("sv.%s.route", srvTarget), "/item")
	query.Set("item", s.Item)
	query.Set("svAjaxReqParam", "ajax")
	query.Set("streetname", s.StreetName)

	return fmt.Sprintf("%s?%s", baseURL, query.Encode())
}

func (s *SRVCollections) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *SRVCollections) Fetch(ctx context.Context) (*board.Payload, error) {
	log.Debug().Str("street", s.StreetName).Msg("Making SRV collections API call")

	headers := map[string]string{
		"Referer":          DefaultSRVBaseURL,
		"X-Requested-With": "XMLHttpRequest",
	}

	var response srvResponse
	if err := s.Client.GetJSON(ctx, s.requestURL(), headers, &response); err != nil {
		return nil, err
	}
	if response.Services == nil {
		return nil, malformed("missing services")
	}

	language := s.Language
	if language == nil {
		language = timeutil.Swedish
	}

	replacements := s.DescriptionReplacements
	if replacements == nil {
		replacements = DefaultDescriptionReplacements
	}

	now := s.now()
	var services []board.ServiceEntry

	for _, service := range *response.Services {
		description := service.ServiceDescription
		for from, to := range replacements {
			description = strings.ReplaceAll(description, from, to)
		}

		for _, cycleDate := range service.CycleDates {
			nextDate, err := ParseSwedishDate(cycleDate.Date, now)
			if err != nil {
				return nil, &MalformedResponseError{Err: err}
			}

			entry := board.ServiceEntry{
				Description: description,
				NextDate:    nextDate,
			}
			entry.CountdownText = entry.Countdown(now, language)

			services = append(services, entry)
		}
	}

	util.InPlaceFilter(&services, func(entry board.ServiceEntry) bool {
		return !entry.NextDate.Before(now)
	})
	sort.SliceStable(services, func(a, b int) bool {
		return services[a].NextDate.Before(services[b].NextDate)
	})

	return &board.Payload{Services: services}, nil
}

// ParseSwedishDate reads dates like "måndag 3 juni". The year is not part of the
// text: months before the current one are taken to be next year.
func ParseSwedishDate(text string, now time.Time) (time.Time, error) {
	text = strings.ToLower(norm.NFC.String(strings.TrimSpace(text)))

	match := srvDatePattern.FindStringSubmatch(text)
	if match == nil {
		return time.Time{}, fmt.Errorf("unrecognised date %q", text)
	}

	day, _ := strconv.Atoi(match[srvDatePattern.SubexpIndex("day")])
	monthIndex := slices.Index(swedishMonths, match[srvDatePattern.SubexpIndex("month")])
	if monthIndex < 0 {
		return time.Time{}, fmt.Errorf("unrecognised month in %q", text)
	}
	month := time.Month(monthIndex + 1)

	year := now.Year()
	if month < now.Month() {
		year++
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	if date.Day() != day {
		return time.Time{}, fmt.Errorf("day out of range in %q", text)
	}

	return util.AtClock(date, srvCollectionHour, 0), nil
}
