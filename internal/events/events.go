package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"itmo-bot/internal/retry"
)

// Answered is emitted after a request has been served, for downstream
// consumers (dashboards, offline evaluation). It deliberately carries
// no reasoning text.
type Answered struct {
	EventID        uuid.UUID `json:"event_id"`
	RequestID      string    `json:"request_id"`
	Answer         *int      `json:"answer"`
	MultipleChoice bool      `json:"multiple_choice"`
	SourceCount    int       `json:"source_count"`
	AnsweredAt     time.Time `json:"answered_at"`
}

// Publisher emits answered-request events.
type Publisher interface {
	Publish(ctx context.Context, event Answered) error
	Close()
}

// PublishWithRetry attempts to publish with retries and exponential backoff.
func PublishWithRetry(ctx context.Context, p Publisher, event Answered, attempts int, base time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = p.Publish(ctx, event); err == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retry.ExponentialBackoff(attempt, base)):
		}
	}
	return err
}
