package llm

import "context"

// Client is a minimal text-generation interface to allow pluggable providers.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
