package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/openai/openai-go/v3"
	"golang.org/x/time/rate"

	"itmo-bot/internal/bot"
	"itmo-bot/internal/cache"
	"itmo-bot/internal/config"
	"itmo-bot/internal/events"
	"itmo-bot/internal/evidence"
	"itmo-bot/internal/history"
	"itmo-bot/internal/llm"
	"itmo-bot/internal/logger"
	"itmo-bot/internal/news"
	"itmo-bot/internal/wiki"
)

// Deps bundles the runtime dependencies of the service.
type Deps struct {
	Config  config.Config
	Log     *slog.Logger
	Bot     *bot.Bot
	Cache   cache.Cache
	History history.Store
	Events  events.Publisher
}

// Build loads env, config, and wires all collaborators into a Bot.
func Build() (Deps, error) {
	// A missing .env file is fine; env vars may come from the host.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	llmClient, err := buildLLM(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}

	// Wiki and news share one outbound rate limiter: both hit public
	// endpoints that throttle impolite clients.
	limiter := rate.NewLimiter(rate.Limit(cfg.FetchRPS), cfg.FetchBurst)
	fetchTimeout := time.Duration(cfg.FetchTimeoutSec * float64(time.Second))

	wikiClient, err := wiki.NewMediaWikiClient(cfg.WikiAPIURL, cfg.WikiUserAgent, fetchTimeout, limiter)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize wiki client: %w", err)
	}
	newsFeed, err := news.NewRSSFeed(cfg.NewsFeedURL, cfg.WikiUserAgent, fetchTimeout, limiter)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize news feed: %w", err)
	}

	evCache, err := buildCache(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize cache: %w", err)
	}
	hist, err := buildHistory(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize history store: %w", err)
	}
	pub, err := buildEvents(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize event publisher: %w", err)
	}

	selector := evidence.NewSelector(wikiClient, newsFeed, evCache, time.Duration(cfg.CacheTTLSec)*time.Second, log)
	b := bot.New(llmClient, selector, hist, pub, log)

	return Deps{
		Config:  cfg,
		Log:     log,
		Bot:     b,
		Cache:   evCache,
		History: hist,
		Events:  pub,
	}, nil
}

// Close releases long-lived connections.
func (d Deps) Close() {
	if d.Cache != nil {
		if err := d.Cache.Close(); err != nil {
			d.Log.Warn("cache close failed", "err", err)
		}
	}
	if d.History != nil {
		d.History.Close()
	}
	if d.Events != nil {
		d.Events.Close()
	}
}

func buildLLM(cfg config.Config, log *slog.Logger) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
		client, err := llm.NewOpenAIClient(cfg.OpenAIKey, openai.ChatModel(cfg.LLMModel))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		log.Info("using OpenAI LLM client", "model", cfg.LLMModel)
		return client, nil
	case "stub":
		log.Warn("using stub LLM client; answers are canned")
		return llm.NewStubClient(""), nil
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER: %s (valid options: openai, stub)", cfg.LLMProvider)
	}
}

func buildCache(cfg config.Config, log *slog.Logger) (cache.Cache, error) {
	switch cfg.CacheProvider {
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when CACHE_PROVIDER=redis")
		}
		c, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis cache: %w", err)
		}
		log.Info("using Redis evidence cache")
		return c, nil
	case "memory":
		log.Info("using in-memory evidence cache")
		return cache.NewMemoryCache(time.Duration(cfg.CacheTTLSec) * time.Second), nil
	case "noop":
		return cache.NewNoOpCache(), nil
	default:
		return nil, fmt.Errorf("invalid CACHE_PROVIDER: %s (valid options: redis, memory, noop)", cfg.CacheProvider)
	}
}

func buildHistory(cfg config.Config, log *slog.Logger) (history.Store, error) {
	switch cfg.HistoryProvider {
	case "postgres":
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("DB_URL is required when HISTORY_PROVIDER=postgres")
		}
		st, err := history.NewPostgres(cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres history: %w", err)
		}
		log.Info("using Postgres request history")
		return st, nil
	case "noop":
		return history.NewNoOpStore(), nil
	default:
		return nil, fmt.Errorf("invalid HISTORY_PROVIDER: %s (valid options: postgres, noop)", cfg.HistoryProvider)
	}
}

func buildEvents(cfg config.Config, log *slog.Logger) (events.Publisher, error) {
	switch cfg.EventsProvider {
	case "nats":
		if cfg.NATSURL == "" {
			return nil, fmt.Errorf("NATS_URL is required when EVENTS_PROVIDER=nats")
		}
		nc, err := nats.Connect(cfg.NATSURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		log.Info("using NATS event publisher")
		return events.NewNATS(log, nc), nil
	case "noop":
		return events.NewNoOpPublisher(), nil
	default:
		return nil, fmt.Errorf("invalid EVENTS_PROVIDER: %s (valid options: nats, noop)", cfg.EventsProvider)
	}
}
