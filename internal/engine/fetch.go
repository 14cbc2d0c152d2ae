package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxBodySize caps how much of a snapshot response is read.
const maxBodySize = 4 << 20

// FetchError is the only failure kind of a fetch: a transport error, a
// non-2xx status or a body that is not a JSON object.
type FetchError struct {
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func newFetchError(err error) *FetchError {
	return &FetchError{Message: err.Error(), Err: err}
}

// Client talks to the monitoring backend. It performs no retries and no
// caching; the zero value of http.Client timeouts is kept.
type Client struct {
	baseURL   string
	http      *http.Client
	UserAgent string
}

// UserAgent returns the User-Agent header value for a client version.
func UserAgent(version string) string {
	if version == "" {
		return "snmpdash"
	}
	return "snmpdash/" + version
}

// NewClient creates a Client for baseURL. A nil hc uses a fresh http.Client.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      hc,
		UserAgent: UserAgent(""),
	}
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ReportURL returns the URL of the PDF report endpoint.
func (c *Client) ReportURL() string {
	return c.baseURL + ReportPath
}

// Fetch performs one GET of the snapshot endpoint. Every error it returns
// is a *FetchError.
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	resp, err := c.get(ctx, c.baseURL+SnapshotPath)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, newFetchError(fmt.Errorf("read response: %w", err))
	}

	snap, err := DecodeSnapshot(body)
	if err != nil {
		return nil, newFetchError(err)
	}
	return snap, nil
}

// get issues a GET and converts transport failures and non-2xx statuses
// into a *FetchError. On success the caller owns resp.Body.
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newFetchError(err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, newFetchError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		resp.Body.Close()
		return nil, newFetchError(fmt.Errorf("request failed with status %s", resp.Status))
	}
	return resp, nil
}
