package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is one served request, kept for audit and offline review.
// Recording is best-effort: the response to the caller never depends
// on it.
type Record struct {
	ID             uuid.UUID
	RequestID      string
	Query          string
	Answer         *int
	MultipleChoice bool
	SourceCount    int
	Latency        time.Duration
	CreatedAt      time.Time
}

// Store persists served requests.
type Store interface {
	Save(ctx context.Context, rec Record) error
	Close()
}
