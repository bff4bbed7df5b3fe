package history

import "context"

// NoOpStore drops every record. Default when no DB_URL is configured.
type NoOpStore struct{}

func NewNoOpStore() *NoOpStore {
	return &NoOpStore{}
}

func (s *NoOpStore) Save(context.Context, Record) error { return nil }

func (s *NoOpStore) Close() {}
