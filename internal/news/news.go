package news

import "context"

// Entry is a single feed item.
type Entry struct {
	Title string
	Link  string
}

// Feed returns entries from a news source, newest first as ordered by
// the source itself.
type Feed interface {
	Fetch(ctx context.Context) ([]Entry, error)
}
