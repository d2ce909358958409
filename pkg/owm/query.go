package owm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	FIND_URL = "https://api.openweathermap.org/data/2.5/find"
	UNITS    = "metric"

	// Error bodies are only read this far.
	maxErrorBody = 4 << 10
)

// Client searches for locations. Its zero value is not usable; see NewClient.
type Client struct {
	endpoint   string
	appID      string
	httpClient *http.Client
}

// NewClient builds a client for the find endpoint authenticated with appID.
// An empty endpoint selects FIND_URL and a nil httpClient selects
// http.DefaultClient. No timeout is imposed beyond what httpClient carries.
func NewClient(endpoint, appID string, httpClient *http.Client) *Client {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = FIND_URL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		appID:      appID,
		httpClient: httpClient,
	}
}

// Find runs a single search for text.
func (c *Client) Find(ctx context.Context, text string) (FindResult, error) {
	var result FindResult

	addr, err := c.url(text)
	if err != nil {
		return result, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr.String(), nil)
	if err != nil {
		return result, fmt.Errorf("build find request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return result, fmt.Errorf("find request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return result, &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return result, fmt.Errorf("decode find response: %w", err)
	}

	return result, nil
}

func (c *Client) url(text string) (*url.URL, error) {
	addr, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse find endpoint %q: %w", c.endpoint, err)
	}

	// Keep anything already on the endpoint, such as a proxy's own params.
	vals := addr.Query()
	vals.Set("q", text)
	vals.Set("appid", c.appID)
	vals.Set("units", UNITS)
	addr.RawQuery = vals.Encode()
	return addr, nil
}
