package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const maxResponseBytes = 1 << 20 // 1MB

// MediaWikiClient looks up article intros via the MediaWiki action API
// (action=query&prop=extracts).
type MediaWikiClient struct {
	apiURL     string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewMediaWikiClient builds a client against the given api.php endpoint.
// Wikipedia asks API consumers to identify themselves, so userAgent is
// sent on every request; limiter throttles outbound calls and may be nil.
func NewMediaWikiClient(apiURL, userAgent string, timeout time.Duration, limiter *rate.Limiter) (*MediaWikiClient, error) {
	if apiURL == "" {
		return nil, fmt.Errorf("api url required")
	}
	if _, err := url.Parse(apiURL); err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	return &MediaWikiClient{
		apiURL:     apiURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
	}, nil
}

type extractsResponse struct {
	Query struct {
		Pages map[string]struct {
			Missing *string `json:"missing"`
			Extract string  `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// Lookup fetches the plain-text intro extract for title. A page the
// wiki reports as missing yields Page{Exists: false} and no error;
// transport and decode problems are returned as errors.
func (c *MediaWikiClient) Lookup(ctx context.Context, title string) (Page, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Page{}, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("redirects", "1")
	params.Set("format", "json")
	params.Set("titles", title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return Page{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var payload extractsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return Page{}, fmt.Errorf("decode response: %w", err)
	}

	// The API keys pages by page id, "-1" for missing titles. A single
	// title yields a single entry either way.
	for _, page := range payload.Query.Pages {
		if page.Missing != nil {
			return Page{Exists: false}, nil
		}
		return Page{Exists: true, Summary: page.Extract}, nil
	}
	return Page{Exists: false}, nil
}
