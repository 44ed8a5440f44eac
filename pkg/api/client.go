package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
)

const userAgent = "dabrowse (+https://github.com/dabtools/dabrowse)"

// Client performs GET requests against a submission server.
type Client struct {
	origin *Origin
	http   *retryablehttp.Client
}

// NewClient returns a client that never retries. View fetches re-run only
// through a key change, so transport-level retries would just delay the
// Failure state.
func NewClient(origin *Origin) *Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 0
	c.Logger = nil
	return &Client{origin: origin, http: c}
}

// NewRetryingClient returns a client with default retry behavior, for
// one-shot command-line fetches.
func NewRetryingClient(origin *Origin) *Client {
	c := retryablehttp.NewClient()
	c.Logger = nil
	return &Client{origin: origin, http: c}
}

// Origin returns the origin this client talks to.
func (c *Client) Origin() *Origin {
	return c.origin
}

// HTTPClient exposes the underlying standard http.Client.
func (c *Client) HTTPClient() *http.Client {
	return c.http.StandardClient()
}

// Titles fetches and decodes a list of title submissions from requestURL.
func (c *Client) Titles(ctx context.Context, requestURL string) ([]Title, error) {
	body, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}
	return ParseTitles(body)
}

// Thumbnails fetches and decodes a list of thumbnail submissions from requestURL.
func (c *Client) Thumbnails(ctx context.Context, requestURL string) ([]Thumbnail, error) {
	body, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}
	return ParseThumbnails(body)
}

// Status fetches the server's status document.
func (c *Client) Status(ctx context.Context) (Status, error) {
	u, err := c.origin.Join("api", "status")
	if err != nil {
		return Status{}, err
	}
	body, err := c.get(ctx, u)
	if err != nil {
		return Status{}, err
	}
	return ParseStatus(body)
}

func (c *Client) get(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", requestURL, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", requestURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", requestURL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s returned status %d", requestURL, resp.StatusCode)
	}
	return body, nil
}
