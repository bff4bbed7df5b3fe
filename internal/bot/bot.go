// Package bot runs the full answering pipeline for one request:
// generate, extract, classify, select evidence, assemble the envelope.
package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"itmo-bot/internal/answer"
	"itmo-bot/internal/events"
	"itmo-bot/internal/evidence"
	"itmo-bot/internal/history"
	"itmo-bot/internal/llm"
)

// promptTemplate is the fixed generation instruction; only the query is
// interpolated. The model is told 1-10 even though extraction also
// accepts 0.
const promptTemplate = "Вопрос: %s\nОтветь только номером правильного варианта (1-10). Если вопрос не требует выбора, напиши 'null'."

const (
	noResponseReasoning     = "No response"
	modelResponsePrefix     = "Model response: "
	publishAttempts         = 3
	publishBackoffBase      = 100 * time.Millisecond
	recordTimeoutAfterServe = 5 * time.Second
)

// Response is the envelope returned to the caller. Sources is always
// non-nil so it serializes as a JSON array.
type Response struct {
	ID        any               `json:"id"`
	Answer    *int              `json:"answer"`
	Reasoning string            `json:"reasoning"`
	Sources   []evidence.Source `json:"sources"`
}

// Bot orchestrates the collaborators for a single request. It is
// stateless across requests; every entity it touches is request-scoped.
type Bot struct {
	llm      llm.Client
	selector *evidence.Selector
	history  history.Store
	events   events.Publisher
	log      *slog.Logger
}

// New wires a Bot from its collaborators.
func New(l llm.Client, s *evidence.Selector, h history.Store, e events.Publisher, log *slog.Logger) *Bot {
	return &Bot{
		llm:      l,
		selector: s,
		history:  h,
		events:   e,
		log:      log,
	}
}

// Handle answers one query. It never returns an error: collaborator
// failures degrade the envelope (empty answer, fixed reasoning, empty
// sources) but the caller always gets a well-formed Response.
func (b *Bot) Handle(ctx context.Context, id any, query string) Response {
	start := time.Now()
	isMultipleChoice := answer.IsMultipleChoice(query)

	// Generation and evidence are independent: generation works on the
	// prompt, evidence on the original query. Run them concurrently.
	var (
		generated string
		genErr    error
		sources   []evidence.Source
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		generated, genErr = b.llm.Generate(gctx, fmt.Sprintf(promptTemplate, query))
		return nil
	})
	g.Go(func() error {
		sources = b.selector.Select(gctx, query, isMultipleChoice)
		return nil
	})
	_ = g.Wait()

	reasoning := noResponseReasoning
	var extracted *int
	if genErr != nil {
		b.log.Warn("generation failed", "err", genErr)
	} else if generated != "" {
		reasoning = modelResponsePrefix + generated
		extracted = answer.Extract(generated)
	}

	// A discrete answer only makes sense for an enumerated question.
	var finalAnswer *int
	if isMultipleChoice {
		finalAnswer = extracted
	}

	if len(sources) > evidence.MaxSources {
		sources = sources[:evidence.MaxSources]
	}
	if sources == nil {
		sources = []evidence.Source{}
	}

	resp := Response{
		ID:        id,
		Answer:    finalAnswer,
		Reasoning: reasoning,
		Sources:   sources,
	}

	b.record(ctx, query, resp, isMultipleChoice, time.Since(start))
	return resp
}

// record persists the audit entry and publishes the answered event.
// Both are best-effort; failures are logged and never affect the
// response.
func (b *Bot) record(ctx context.Context, query string, resp Response, isMultipleChoice bool, latency time.Duration) {
	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeoutAfterServe)
	defer cancel()

	requestID := requestIDString(resp.ID)

	if err := b.history.Save(recCtx, history.Record{
		RequestID:      requestID,
		Query:          query,
		Answer:         resp.Answer,
		MultipleChoice: isMultipleChoice,
		SourceCount:    len(resp.Sources),
		Latency:        latency,
	}); err != nil {
		b.log.Warn("failed to save history record", "request_id", requestID, "err", err)
	}

	event := events.Answered{
		RequestID:      requestID,
		Answer:         resp.Answer,
		MultipleChoice: isMultipleChoice,
		SourceCount:    len(resp.Sources),
	}
	if err := events.PublishWithRetry(recCtx, b.events, event, publishAttempts, publishBackoffBase); err != nil {
		b.log.Warn("failed to publish answered event", "request_id", requestID, "err", err)
	}
}

// requestIDString flattens the caller-supplied id for logs and records.
// The HTTP layer hands it over as raw JSON to echo it back unchanged;
// a JSON string is unquoted here so records carry req-7, not "req-7".
func requestIDString(id any) string {
	switch v := id.(type) {
	case json.RawMessage:
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
		return string(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
