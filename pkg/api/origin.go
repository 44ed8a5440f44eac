package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/dabtools/dabrowse/internal/utils"
)

// Origin holds the API server's base URL and, once discovered, the URL of the
// server's logo. It is built once at startup and shared read-only afterwards.
type Origin struct {
	base    *url.URL
	logoURL string
}

// NewOrigin parses and validates the server base URL.
func NewOrigin(raw string) (*Origin, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("server URL %q has no host", raw)
	}
	return &Origin{base: u}, nil
}

// BaseURL returns the origin's base URL as a string.
func (o *Origin) BaseURL() string {
	return o.base.String()
}

// Join appends path segments to the base URL, percent-encoding each segment.
func (o *Origin) Join(segments ...string) (string, error) {
	u, err := url.JoinPath(o.base.String(), segments...)
	if err != nil {
		return "", fmt.Errorf("building API URL: %w", err)
	}
	return u, nil
}

// LogoURL returns the discovered logo URL, or "" when none was found.
func (o *Origin) LogoURL() string {
	return o.logoURL
}

// DiscoverLogo fetches the origin's index page and records the href of its
// `link[rel=icon]` element, resolved against the base URL. Must be called
// during startup, before the Origin is shared; failure leaves the logo absent.
func (o *Origin) DiscoverLogo(ctx context.Context, client *http.Client) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.base.String(), nil)
	if err != nil {
		return
	}
	resp, err := client.Do(req)
	if err != nil {
		utils.Log.Debugf("Logo discovery failed: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		utils.Log.Debugf("Logo discovery got status %d", resp.StatusCode)
		return
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		utils.Log.Debugf("Logo discovery could not parse index page: %v", err)
		return
	}
	href, ok := doc.Find(`link[rel=icon]`).First().Attr("href")
	if !ok || href == "" {
		return
	}
	ref, err := url.Parse(href)
	if err != nil {
		return
	}
	o.logoURL = o.base.ResolveReference(ref).String()
}
