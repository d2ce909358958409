package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	RANGE_PATH = "/location_informations/information_range"

	maxErrorBody = 4 << 10
)

// Client queries the backend rooted at a base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a Client. A nil httpClient selects http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: httpClient,
	}
}

// GetRange fetches the records for q. An empty result is not an error.
func (c *Client) GetRange(ctx context.Context, q *RangeQuery) (Records, error) {
	addr, err := c.url(q)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build range request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NoResponseError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp)
	}

	var result Records
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode range response: %w", err)
	}
	if result == nil {
		result = Records{}
	}
	return result, nil
}

func (c *Client) url(q *RangeQuery) (*url.URL, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("no backend base URL configured")
	}
	addr, err := url.Parse(c.baseURL + RANGE_PATH)
	if err != nil {
		return nil, fmt.Errorf("parse backend URL %q: %w", c.baseURL, err)
	}
	if (addr.Scheme != "http" && addr.Scheme != "https") || addr.Host == "" {
		return nil, fmt.Errorf("backend URL %q is not an http(s) URL", c.baseURL)
	}
	addr.RawQuery = q.build().Encode()
	return addr, nil
}

func statusError(resp *http.Response) *StatusError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	raw = bytes.TrimSpace(raw)

	var body errorBody
	msg := ""
	if err := json.Unmarshal(raw, &body); err == nil {
		msg = body.Message
	}
	if msg == "" {
		msg = string(raw)
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &StatusError{Code: resp.StatusCode, Message: msg}
}
