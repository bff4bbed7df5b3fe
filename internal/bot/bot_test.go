package bot

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"itmo-bot/internal/cache"
	"itmo-bot/internal/events"
	"itmo-bot/internal/evidence"
	"itmo-bot/internal/history"
	"itmo-bot/internal/llm"
	"itmo-bot/internal/news"
	"itmo-bot/internal/wiki"
)

type testDoubles struct {
	llm     *llm.MockClient
	wiki    *wiki.MockClient
	news    *news.MockFeed
	history *history.MockStore
	events  *events.MockPublisher
}

func newTestBot() (*Bot, *testDoubles) {
	d := &testDoubles{
		llm:     new(llm.MockClient),
		wiki:    new(wiki.MockClient),
		news:    new(news.MockFeed),
		history: new(history.MockStore),
		events:  new(events.MockPublisher),
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	selector := evidence.NewSelector(d.wiki, d.news, cache.NewNoOpCache(), time.Minute, log)
	return New(d.llm, selector, d.history, d.events, log), d
}

func (d *testDoubles) allowRecording() {
	d.history.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()
	d.events.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func TestHandleOpenQuestionWithNullAnswer(t *testing.T) {
	b, d := newTestBot()
	d.allowRecording()
	d.llm.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Какой город столица России?")
	})).Return("Ответ: null", nil).Once()
	d.news.On("Fetch", mock.Anything).Return([]news.Entry{
		{Link: "https://news.itmo.ru/ru/news/1/"},
		{Link: "https://news.itmo.ru/ru/news/2/"},
	}, nil).Once()

	resp := b.Handle(context.Background(), 1, "Какой город столица России?\n")

	if resp.ID != 1 {
		t.Errorf("id not echoed: %v", resp.ID)
	}
	if resp.Answer != nil {
		t.Errorf("expected null answer, got %d", *resp.Answer)
	}
	if !strings.Contains(resp.Reasoning, "null") {
		t.Errorf("reasoning should embed the raw model text: %q", resp.Reasoning)
	}
	if len(resp.Sources) != 2 {
		t.Fatalf("expected 2 news sources, got %d", len(resp.Sources))
	}
	for _, src := range resp.Sources {
		if src.Type != evidence.TypeNews {
			t.Errorf("expected itmo_news sources, got %q", src.Type)
		}
	}
	d.llm.AssertExpectations(t)
}

func TestHandleMultipleChoiceWithWikiEvidence(t *testing.T) {
	b, d := newTestBot()
	d.allowRecording()
	query := "Вопрос\n1. Да\n2. Нет"
	d.llm.On("Generate", mock.Anything, mock.Anything).Return("3", nil).Once()
	d.wiki.On("Lookup", mock.Anything, query).
		Return(wiki.Page{Exists: true, Summary: "Справка."}, nil).Once()

	resp := b.Handle(context.Background(), 2, query)

	if resp.Answer == nil || *resp.Answer != 3 {
		t.Fatalf("expected answer 3, got %v", resp.Answer)
	}
	if resp.Reasoning != "Model response: 3" {
		t.Errorf("unexpected reasoning: %q", resp.Reasoning)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].Type != evidence.TypeWikipedia {
		t.Fatalf("expected a single wikipedia source, got %v", resp.Sources)
	}
	d.news.AssertNotCalled(t, "Fetch", mock.Anything)
}

func TestHandleGenerationFailure(t *testing.T) {
	b, d := newTestBot()
	d.allowRecording()
	d.llm.On("Generate", mock.Anything, mock.Anything).
		Return("", errors.New("model timeout")).Once()
	d.news.On("Fetch", mock.Anything).Return([]news.Entry{}, nil).Once()

	resp := b.Handle(context.Background(), "abc", "Свободный вопрос")

	if resp.Answer != nil {
		t.Errorf("expected null answer, got %v", resp.Answer)
	}
	if resp.Reasoning != "No response" {
		t.Errorf("expected fixed no-response reasoning, got %q", resp.Reasoning)
	}
	if resp.Sources == nil {
		t.Error("sources must be non-nil even when empty")
	}
}

func TestHandleEmptyGenerationTreatedAsAbsent(t *testing.T) {
	b, d := newTestBot()
	d.allowRecording()
	d.llm.On("Generate", mock.Anything, mock.Anything).Return("", nil).Once()
	d.wiki.On("Lookup", mock.Anything, mock.Anything).Return(wiki.Page{}, nil).Once()

	resp := b.Handle(context.Background(), 7, "В\n1. а")

	if resp.Answer != nil {
		t.Errorf("expected null answer for empty generation, got %v", resp.Answer)
	}
	if resp.Reasoning != "No response" {
		t.Errorf("expected fixed no-response reasoning, got %q", resp.Reasoning)
	}
}

func TestHandleSuppressesAnswerForOpenQuestions(t *testing.T) {
	b, d := newTestBot()
	d.allowRecording()
	// The model volunteers a number even though nothing was enumerated.
	d.llm.On("Generate", mock.Anything, mock.Anything).Return("5", nil).Once()
	d.news.On("Fetch", mock.Anything).Return([]news.Entry{}, nil).Once()

	resp := b.Handle(context.Background(), 3, "Расскажи про университет")

	if resp.Answer != nil {
		t.Errorf("answer must be suppressed for open questions, got %d", *resp.Answer)
	}
	if resp.Reasoning != "Model response: 5" {
		t.Errorf("reasoning still carries the raw text, got %q", resp.Reasoning)
	}
}

func TestHandleCapsSources(t *testing.T) {
	b, d := newTestBot()
	d.allowRecording()
	d.llm.On("Generate", mock.Anything, mock.Anything).Return("null", nil).Once()
	d.news.On("Fetch", mock.Anything).Return([]news.Entry{
		{Link: "l1"}, {Link: "l2"}, {Link: "l3"}, {Link: "l4"},
	}, nil).Once()

	resp := b.Handle(context.Background(), 4, "Свободный вопрос")

	if len(resp.Sources) != evidence.MaxSources {
		t.Errorf("expected at most %d sources, got %d", evidence.MaxSources, len(resp.Sources))
	}
}

func TestHandleRecordsHistoryAndEvent(t *testing.T) {
	b, d := newTestBot()
	d.llm.On("Generate", mock.Anything, mock.Anything).Return("2", nil).Once()
	d.wiki.On("Lookup", mock.Anything, mock.Anything).Return(wiki.Page{}, nil).Once()

	d.history.On("Save", mock.Anything, mock.MatchedBy(func(rec history.Record) bool {
		return rec.RequestID == "42" && rec.MultipleChoice && rec.Answer != nil && *rec.Answer == 2
	})).Return(nil).Once()
	d.events.On("Publish", mock.Anything, mock.MatchedBy(func(ev events.Answered) bool {
		return ev.RequestID == "42" && ev.SourceCount == 0
	})).Return(nil).Once()

	b.Handle(context.Background(), 42, "В\n1. а\n2. б")

	d.history.AssertExpectations(t)
	d.events.AssertExpectations(t)
}

func TestHandleUnquotesStringIDForRecords(t *testing.T) {
	b, d := newTestBot()
	d.llm.On("Generate", mock.Anything, mock.Anything).Return("null", nil).Once()
	d.news.On("Fetch", mock.Anything).Return([]news.Entry{}, nil).Once()

	d.history.On("Save", mock.Anything, mock.MatchedBy(func(rec history.Record) bool {
		return rec.RequestID == "req-7"
	})).Return(nil).Once()
	d.events.On("Publish", mock.Anything, mock.MatchedBy(func(ev events.Answered) bool {
		return ev.RequestID == "req-7"
	})).Return(nil).Once()

	resp := b.Handle(context.Background(), json.RawMessage(`"req-7"`), "Свободный вопрос")

	// The envelope still echoes the id as the caller sent it.
	if string(resp.ID.(json.RawMessage)) != `"req-7"` {
		t.Errorf("id not echoed unchanged: %v", resp.ID)
	}
	d.history.AssertExpectations(t)
	d.events.AssertExpectations(t)
}

func TestHandleRecordingFailuresDoNotAffectResponse(t *testing.T) {
	b, d := newTestBot()
	d.llm.On("Generate", mock.Anything, mock.Anything).Return("1", nil).Once()
	d.wiki.On("Lookup", mock.Anything, mock.Anything).Return(wiki.Page{}, nil).Once()
	d.history.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	d.events.On("Publish", mock.Anything, mock.Anything).Return(errors.New("nats down"))

	resp := b.Handle(context.Background(), 5, "В\n1. а")

	if resp.Answer == nil || *resp.Answer != 1 {
		t.Errorf("response degraded by recording failure: %v", resp.Answer)
	}
}
