package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const answeredSubject = "bot.answered"

// NewNATS constructs a thin NATS-based publisher.
func NewNATS(log *slog.Logger, nc *nats.Conn) Publisher {
	return &natsPublisher{log: log, nc: nc}
}

type natsPublisher struct {
	log *slog.Logger
	nc  *nats.Conn
}

func (p *natsPublisher) Publish(_ context.Context, event Answered) error {
	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.AnsweredAt.IsZero() {
		event.AnsweredAt = time.Now().UTC()
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.nc.Publish(answeredSubject, body)
}

func (p *natsPublisher) Close() {
	if err := p.nc.Drain(); err != nil {
		p.log.Warn("nats drain failed", "err", err)
	}
}
