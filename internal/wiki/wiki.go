package wiki

import "context"

// Page is the result of an encyclopedia lookup.
type Page struct {
	Exists  bool
	Summary string
}

// Client resolves a title to an article summary.
type Client interface {
	Lookup(ctx context.Context, title string) (Page, error)
}
