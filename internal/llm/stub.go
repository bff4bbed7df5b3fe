package llm

import "context"

// StubClient returns a canned reply for every prompt. Used for local
// runs and smoke tests where no API key is configured.
type StubClient struct {
	Reply string
}

// NewStubClient creates a stub that always answers with reply.
// An empty reply defaults to "null".
func NewStubClient(reply string) *StubClient {
	if reply == "" {
		reply = "null"
	}
	return &StubClient{Reply: reply}
}

func (c *StubClient) Generate(_ context.Context, _ string) (string, error) {
	return c.Reply, nil
}
