package events

import "context"

// NoOpPublisher drops every event. Default when no NATS_URL is configured.
type NoOpPublisher struct{}

func NewNoOpPublisher() *NoOpPublisher {
	return &NoOpPublisher{}
}

func (p *NoOpPublisher) Publish(context.Context, Answered) error { return nil }

func (p *NoOpPublisher) Close() {}
