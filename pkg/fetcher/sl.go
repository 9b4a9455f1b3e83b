package fetcher

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/signboard/pkg/board"
	"github.com/travigo/signboard/pkg/timeutil"
)

const DefaultSLBaseURL = "https://api.sl.se/api2"

// Transport modes as named in the SL realtime departures response
const (
	SLModeMetros = "Metros"
	SLModeBuses  = "Buses"
	SLModeTrains = "Trains"
	SLModeTrams  = "Trams"
	SLModeShips  = "Ships"
)

var SLModes = []string{SLModeMetros, SLModeBuses, SLModeTrains, SLModeTrams, SLModeShips}

// SLDepartures fetches realtime departures for one SL site
type SLDepartures struct {
	Client *Client

	BaseURL    string
	APIKey     string
	SiteID     string
	TimeWindow int
	Modes      []string

	Location *time.Location
}

func (s *SLDepartures) Name() string {
	return fmt.Sprintf("sl-departures/%s", s.SiteID)
}

type slResponse struct {
	StatusCode   *int            `json:"StatusCode"`
	Message      string          `json:"Message"`
	ResponseData *slResponseData `json:"ResponseData"`
}

type slResponseData struct {
	LatestUpdate string `json:"LatestUpdate"`

	Metros []slDeparture `json:"Metros"`
	Buses  []slDeparture `json:"Buses"`
	Trains []slDeparture `json:"Trains"`
	Trams  []slDeparture `json:"Trams"`
	Ships  []slDeparture `json:"Ships"`
}

func (d *slResponseData) byMode(mode string) ([]slDeparture, error) {
	switch mode {
	case SLModeMetros:
		return d.Metros, nil
	case SLModeBuses:
		return d.Buses, nil
	case SLModeTrains:
		return d.Trains, nil
	case SLModeTrams:
		return d.Trams, nil
	case SLModeShips:
		return d.Ships, nil
	default:
		return nil, fmt.Errorf("unknown SL transport mode %q", mode)
	}
}

type slDeparture struct {
	LineNumber         string        `json:"LineNumber"`
	Destination        string        `json:"Destination"`
	JourneyDirection   int           `json:"JourneyDirection"`
	DisplayTime        string        `json:"DisplayTime"`
	TimeTabledDateTime string        `json:"TimeTabledDateTime"`
	ExpectedDateTime   string        `json:"ExpectedDateTime"`
	Deviations         []slDeviation `json:"Deviations"`
}

type slDeviation struct {
	Text            string `json:"Text"`
	Consequence     string `json:"Consequence"`
	ImportanceLevel int    `json:"ImportanceLevel"`
}

func (s *SLDepartures) requestURL() string {
	baseURL := s.BaseURL
	if baseURL == "" {
		baseURL = DefaultSLBaseURL
	}

	timeWindow := s.TimeWindow
	if timeWindow <= 0 {
		timeWindow = 30
	}

	query := url.Values{}
	query.Set("key", s.APIKey)
	query.Set("siteid", s.SiteID)
	query.Set("timewindow", strconv.Itoa(timeWindow))

	return fmt.Sprintf("%s/realtimedeparturesV4.json?%s", strings.TrimRight(baseURL, "/"), query.Encode())
}

func (s *SLDepartures) Fetch(ctx context.Context) (*board.Payload, error) {
	log.Debug().Str("site", s.SiteID).Msg("Making SL departures API call")

	var response slResponse
	if err := s.Client.GetJSON(ctx, s.requestURL(), nil, &response); err != nil {
		return nil, err
	}

	if response.StatusCode == nil {
		return nil, malformed("missing StatusCode")
	}
	if *response.StatusCode != 0 {
		return nil, &RemoteError{StatusCode: 200, InternalCode: *response.StatusCode, Message: response.Message}
	}
	if response.ResponseData == nil {
		return nil, malformed("missing ResponseData")
	}

	modes := s.Modes
	if len(modes) == 0 {
		modes = []string{SLModeMetros}
	}

	location := s.Location
	if location == nil {
		location = time.Local
	}

	payload := &board.Payload{
		Departures: map[board.Direction][]board.DepartureEntry{},
	}

	for _, mode := range modes {
		departures, err := response.ResponseData.byMode(mode)
		if err != nil {
			return nil, err
		}

		for _, departure := range departures {
			entry, err := departure.toEntry(location)
			if err != nil {
				return nil, err
			}

			payload.Departures[entry.Direction] = append(payload.Departures[entry.Direction], entry)
		}
	}

	return payload, nil
}

func (d slDeparture) toEntry(location *time.Location) (board.DepartureEntry, error) {
	timestamp := d.ExpectedDateTime
	if timestamp == "" {
		timestamp = d.TimeTabledDateTime
	}

	scheduledAt, err := timeutil.ParseInstant(timestamp, location)
	if err != nil {
		return board.DepartureEntry{}, &MalformedResponseError{Err: fmt.Errorf("line %s: %w", d.LineNumber, err)}
	}

	entry := board.DepartureEntry{
		LineID:      d.LineNumber,
		Destination: d.Destination,
		Direction:   board.Direction(d.JourneyDirection),
		ScheduledAt: scheduledAt,
	}

	for _, deviation := range d.Deviations {
		entry.Deviations = append(entry.Deviations, board.Deviation{
			Severity: deviation.ImportanceLevel,
			Text:     strings.TrimSpace(deviation.Consequence + " " + deviation.Text),
		})
	}

	return entry, nil
}
