package news

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"
)

// RSSFeed fetches and parses an RSS/Atom feed from a fixed URL.
type RSSFeed struct {
	feedURL string
	parser  *gofeed.Parser
	limiter *rate.Limiter
}

// NewRSSFeed builds a feed reader for feedURL. limiter throttles
// outbound fetches and may be nil.
func NewRSSFeed(feedURL, userAgent string, timeout time.Duration, limiter *rate.Limiter) (*RSSFeed, error) {
	if feedURL == "" {
		return nil, fmt.Errorf("feed url required")
	}
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = &http.Client{Timeout: timeout}
	return &RSSFeed{
		feedURL: feedURL,
		parser:  parser,
		limiter: limiter,
	}, nil
}

// Fetch returns the feed entries in source order. Items without a link
// are skipped.
func (f *RSSFeed) Fetch(ctx context.Context) ([]Entry, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	feed, err := f.parser.ParseURLWithContext(f.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || item.Link == "" {
			continue
		}
		entries = append(entries, Entry{Title: item.Title, Link: item.Link})
	}
	return entries, nil
}
