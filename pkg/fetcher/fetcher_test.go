package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/signboard/pkg/board"
	"github.com/travigo/signboard/pkg/timeutil"
)

func serve(t *testing.T, status int, contentType string, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func slProvider(baseURL string) *SLDepartures {
	return &SLDepartures{
		Client:   NewClient(2 * time.Second),
		BaseURL:  baseURL,
		APIKey:   "key",
		SiteID:   "9288",
		Location: time.UTC,
	}
}

const slBody = `{
  "StatusCode": 0,
  "Message": null,
  "ResponseData": {
    "LatestUpdate": "2024-06-03T07:59:41",
    "Metros": [
      {"LineNumber": "13", "Destination": "Norsborg", "JourneyDirection": 1, "ExpectedDateTime": "2024-06-03T08:04:00", "Deviations": null},
      {"LineNumber": "14", "Destination": "Mörby centrum", "JourneyDirection": 2, "ExpectedDateTime": "2024-06-03T08:02:00",
       "Deviations": [{"Text": "signal fault", "Consequence": "Delay:", "ImportanceLevel": 4}]},
      {"LineNumber": "13", "Destination": "Norsborg", "JourneyDirection": 1, "TimeTabledDateTime": "2024-06-03T08:09:00"}
    ],
    "Buses": [
      {"LineNumber": "740", "Destination": "Fittja", "JourneyDirection": 2, "ExpectedDateTime": "2024-06-03T08:05:00"}
    ],
    "StopPointDeviations": []
  }
}`

func TestSLDeparturesFetch(t *testing.T) {
	var requestedPath, requestedQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		requestedQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(slBody))
	}))
	defer server.Close()

	payload, err := slProvider(server.URL).Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/realtimedeparturesV4.json", requestedPath)
	assert.Contains(t, requestedQuery, "siteid=9288")
	assert.Contains(t, requestedQuery, "timewindow=30")

	require.Len(t, payload.Departures[board.DirectionOne], 2)
	require.Len(t, payload.Departures[board.DirectionTwo], 1)
	assert.Equal(t, 3, payload.Len())

	first := payload.Departures[board.DirectionOne][0]
	assert.Equal(t, "13", first.LineID)
	assert.Equal(t, "Norsborg", first.Destination)
	assert.Equal(t, time.Date(2024, 6, 3, 8, 4, 0, 0, time.UTC), first.ScheduledAt)
	assert.Empty(t, first.Deviations)

	assert.Equal(t, time.Date(2024, 6, 3, 8, 9, 0, 0, time.UTC), payload.Departures[board.DirectionOne][1].ScheduledAt)

	other := payload.Departures[board.DirectionTwo][0]
	assert.Equal(t, []board.Deviation{{Severity: 4, Text: "Delay: signal fault"}}, other.Deviations)
}

func TestSLDeparturesModes(t *testing.T) {
	server := serve(t, http.StatusOK, "application/json", slBody)

	provider := slProvider(server.URL)
	provider.Modes = []string{SLModeBuses}

	payload, err := provider.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, payload.Len())
	assert.Equal(t, "740", payload.Departures[board.DirectionTwo][0].LineID)
}

func TestSLDeparturesEmptyResult(t *testing.T) {
	server := serve(t, http.StatusOK, "application/json", `{"StatusCode": 0, "ResponseData": {"Metros": []}}`)

	payload, err := slProvider(server.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, payload.IsEmpty())
}

func TestSLDeparturesErrors(t *testing.T) {
	t.Run("http status", func(t *testing.T) {
		server := serve(t, http.StatusInternalServerError, "text/plain", "oops")

		_, err := slProvider(server.URL).Fetch(context.Background())

		var remoteError *RemoteError
		require.True(t, errors.As(err, &remoteError))
		assert.Equal(t, 500, remoteError.StatusCode)
	})

	t.Run("internal status", func(t *testing.T) {
		server := serve(t, http.StatusOK, "application/json", `{"StatusCode": 1002, "Message": "Key is invalid"}`)

		_, err := slProvider(server.URL).Fetch(context.Background())

		var remoteError *RemoteError
		require.True(t, errors.As(err, &remoteError))
		assert.Equal(t, 1002, remoteError.InternalCode)
		assert.Contains(t, err.Error(), "Key is invalid")
	})

	t.Run("not json", func(t *testing.T) {
		server := serve(t, http.StatusOK, "text/html", "<html>maintenance</html>")

		_, err := slProvider(server.URL).Fetch(context.Background())

		var malformedError *MalformedResponseError
		assert.True(t, errors.As(err, &malformedError))
	})

	t.Run("missing response data", func(t *testing.T) {
		server := serve(t, http.StatusOK, "application/json", `{"StatusCode": 0}`)

		_, err := slProvider(server.URL).Fetch(context.Background())

		var malformedError *MalformedResponseError
		assert.True(t, errors.As(err, &malformedError))
	})

	t.Run("bad timestamp", func(t *testing.T) {
		server := serve(t, http.StatusOK, "application/json",
			`{"StatusCode": 0, "ResponseData": {"Metros": [{"LineNumber": "13", "ExpectedDateTime": "soon"}]}}`)

		_, err := slProvider(server.URL).Fetch(context.Background())

		var malformedError *MalformedResponseError
		require.True(t, errors.As(err, &malformedError))
		assert.ErrorIs(t, err, timeutil.ErrInvalidTimestamp)
	})

	t.Run("connection refused", func(t *testing.T) {
		server := serve(t, http.StatusOK, "application/json", slBody)
		baseURL := server.URL
		server.Close()

		_, err := slProvider(baseURL).Fetch(context.Background())

		var transportError *TransportError
		assert.True(t, errors.As(err, &transportError))
	})
}

func TestClientDecodesCharset(t *testing.T) {
	// "Mörby" encoded as ISO-8859-1
	body := append([]byte(`{"name": "M`), 0xf6)
	body = append(body, []byte(`rby"}`)...)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=ISO-8859-1")
		w.Write(body)
	}))
	defer server.Close()

	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, NewClient(time.Second).GetJSON(context.Background(), server.URL, nil, &out))
	assert.Equal(t, "Mörby", out.Name)
}

const srvBody = `{
  "services": [
    {"serviceDescription": "Sortera hemma, fyrfack kärl 1", "cycleDates": [{"Date": "måndag 3 juni"}, {"Date": "måndag 17 juni"}]},
    {"serviceDescription": "Trädgårdsavfall", "cycleDates": [{"Date": "tisdag 4 juni"}, {"Date": "fredag 31 maj"}]},
    {"serviceDescription": "Julgran", "cycleDates": [{"Date": "tisdag 7 januari"}]}
  ]
}`

func TestSRVCollectionsFetch(t *testing.T) {
	var referer, requestedWith string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		referer = r.Header.Get("Referer")
		requestedWith = r.Header.Get("X-Requested-With")
		assert.Equal(t, "Storgatan", r.URL.Query().Get("streetname"))
		assert.Equal(t, "42", r.URL.Query().Get("item"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(srvBody))
	}))
	defer server.Close()

	now := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	provider := &SRVCollections{
		Client:     NewClient(time.Second),
		BaseURL:    server.URL,
		StreetName: "Storgatan",
		Item:       "42",
		Clock:      func() time.Time { return now },
	}

	payload, err := provider.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, DefaultSRVBaseURL, referer)
	assert.Equal(t, "XMLHttpRequest", requestedWith)

	// 31 maj is before the current month so rolls over to next year
	require.Len(t, payload.Services, 5)
	assert.Equal(t, "Kärl 1", payload.Services[0].Description)
	assert.Equal(t, time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC), payload.Services[0].NextDate)
	assert.Equal(t, "1h", payload.Services[0].CountdownText)
	assert.Equal(t, "Trädgårdsavfall", payload.Services[1].Description)
	assert.Equal(t, "1d1h", payload.Services[1].CountdownText)
	assert.Equal(t, time.Date(2024, 6, 17, 9, 0, 0, 0, time.UTC), payload.Services[2].NextDate)
	assert.Equal(t, time.Date(2025, 1, 7, 9, 0, 0, 0, time.UTC), payload.Services[3].NextDate)
	assert.Equal(t, time.Date(2025, 5, 31, 9, 0, 0, 0, time.UTC), payload.Services[4].NextDate)
}

func TestSRVCollectionsDropsPastCollections(t *testing.T) {
	server := serve(t, http.StatusOK, "application/json",
		`{"services": [{"serviceDescription": "Kärl", "cycleDates": [{"Date": "måndag 3 juni"}]}]}`)

	provider := &SRVCollections{
		Client:  NewClient(time.Second),
		BaseURL: server.URL,
		Clock:   func() time.Time { return time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC) },
	}

	payload, err := provider.Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, payload.IsEmpty())
}

func TestSRVCollectionsMalformed(t *testing.T) {
	for name, body := range map[string]string{
		"missing services": `{"status": "ok"}`,
		"bad date":         `{"services": [{"serviceDescription": "Kärl", "cycleDates": [{"Date": "snart"}]}]}`,
		"bad month":        `{"services": [{"serviceDescription": "Kärl", "cycleDates": [{"Date": "måndag 3 juno"}]}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			server := serve(t, http.StatusOK, "application/json", body)

			provider := &SRVCollections{Client: NewClient(time.Second), BaseURL: server.URL}
			_, err := provider.Fetch(context.Background())

			var malformedError *MalformedResponseError
			assert.True(t, errors.As(err, &malformedError), err)
		})
	}
}

func TestParseSwedishDate(t *testing.T) {
	now := time.Date(2024, 11, 20, 12, 0, 0, 0, time.UTC)

	date, err := ParseSwedishDate("Lördag 23 November", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 11, 23, 9, 0, 0, 0, time.UTC), date)

	date, err = ParseSwedishDate("onsdag 8 januari", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC), date)

	_, err = ParseSwedishDate("fredag 31 februari", now)
	assert.Error(t, err)
}

func TestTextFileFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atd.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hello\r\nBin !tdiff_short(1717430400)\n\n"), 0o644))

	payload, err := (&TextFile{Path: path}).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello", "Bin !tdiff_short(1717430400)"}, payload.Lines)

	_, err = (&TextFile{Path: filepath.Join(t.TempDir(), "missing.txt")}).Fetch(context.Background())
	var transportError *TransportError
	assert.True(t, errors.As(err, &transportError))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "remote error: HTTP status 503", (&RemoteError{StatusCode: 503}).Error())
	assert.Equal(t, "remote error: internal status 5", (&RemoteError{StatusCode: 200, InternalCode: 5}).Error())

	cause := errors.New("connection reset by peer")
	assert.ErrorIs(t, &TransportError{Cause: cause}, cause)
}
