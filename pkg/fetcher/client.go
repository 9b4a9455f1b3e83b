package fetcher

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
)

const defaultUserAgent = "signboard/1.0 (+https://github.com/travigo/signboard)"

type Client struct {
	HTTP      *http.Client
	UserAgent string
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		UserAgent: defaultUserAgent,
	}
}

// GetJSON performs one GET and decodes the JSON body into out
func (c *Client) GetJSON(ctx context.Context, requestURL string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	startTime := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		return &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	log.Debug().
		Str("host", req.URL.Host).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Str("latency", time.Since(startTime).String()).
		Msg("Provider request")

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &RemoteError{StatusCode: resp.StatusCode}
	}

	bodyReader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return malformed("unsupported body encoding: %w", err)
	}

	body, err := io.ReadAll(bodyReader)
	if err != nil {
		return &TransportError{Cause: err}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &MalformedResponseError{Err: err}
	}

	return nil
}
