package evidence

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"itmo-bot/internal/cache"
	"itmo-bot/internal/news"
	"itmo-bot/internal/wiki"
)

// summaryLimit bounds the wikipedia summary attached to a response.
const summaryLimit = 500

// Selector picks and bounds the evidence for a classified query.
// Collaborator failures are logged and swallowed: Select always
// returns a well-formed (possibly empty) list, never an error.
type Selector struct {
	wiki     wiki.Client
	news     news.Feed
	cache    cache.Cache
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewSelector wires a selector from its collaborators.
func NewSelector(w wiki.Client, n news.Feed, c cache.Cache, cacheTTL time.Duration, log *slog.Logger) *Selector {
	return &Selector{
		wiki:     w,
		news:     n,
		cache:    c,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// Select returns the evidence list for a query. Multiple-choice
// queries get at most one wikipedia summary, with no fallback to news
// when the article is missing or the lookup fails. Everything else
// gets up to MaxSources news links. The two branches are mutually
// exclusive, so a result list is always homogeneous.
func (s *Selector) Select(ctx context.Context, query string, isMultipleChoice bool) []Source {
	if isMultipleChoice {
		return s.fromCache(ctx, cache.Key("wiki", query), func() ([]Source, bool) {
			return s.selectWiki(ctx, query)
		})
	}
	return s.fromCache(ctx, cache.Key("news", query), func() ([]Source, bool) {
		return s.selectNews(ctx)
	})
}

func (s *Selector) selectWiki(ctx context.Context, query string) ([]Source, bool) {
	page, err := s.wiki.Lookup(ctx, query)
	if err != nil {
		s.log.Warn("wiki lookup failed", "err", err)
		return []Source{}, false
	}
	if !page.Exists || page.Summary == "" {
		return []Source{}, true
	}
	return []Source{{Type: TypeWikipedia, Content: truncate(page.Summary, summaryLimit)}}, true
}

func (s *Selector) selectNews(ctx context.Context) ([]Source, bool) {
	entries, err := s.news.Fetch(ctx)
	if err != nil {
		s.log.Warn("news fetch failed", "err", err)
		return []Source{}, false
	}
	if len(entries) > MaxSources {
		entries = entries[:MaxSources]
	}
	sources := make([]Source, 0, len(entries))
	for _, entry := range entries {
		sources = append(sources, Source{Type: TypeNews, Link: entry.Link})
	}
	return sources, true
}

// fromCache serves the evidence list from cache when possible and
// stores fresh results. Only results of successful collaborator calls
// are cached; cache errors are logged and ignored.
func (s *Selector) fromCache(ctx context.Context, key string, fetch func() ([]Source, bool)) []Source {
	if data, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn("evidence cache read failed", "err", err)
	} else if data != nil {
		var sources []Source
		if err := json.Unmarshal(data, &sources); err != nil {
			s.log.Warn("evidence cache entry corrupt", "key", key, "err", err)
		} else {
			return sources
		}
	}

	sources, ok := fetch()
	if !ok {
		return sources
	}

	if data, err := json.Marshal(sources); err == nil {
		if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
			s.log.Warn("evidence cache write failed", "err", err)
		}
	}
	return sources
}

// truncate cuts s to at most limit characters, not bytes, so a
// multi-byte summary is never split mid-rune.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
