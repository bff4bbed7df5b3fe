package config

import (
	"log/slog"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration for the bot service.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LLM
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"openai"` // "openai" (uses OpenAI API) or "stub" (for local runs without a key)
	OpenAIKey   string `env:"OPENAI_API_KEY"`
	LLMModel    string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`

	// Wikipedia lookup
	WikiAPIURL    string `env:"WIKI_API_URL" envDefault:"https://ru.wikipedia.org/w/api.php"`
	WikiUserAgent string `env:"WIKI_USER_AGENT" envDefault:"ITMO_Bot/1.0 (https://itmo.ru)"`

	// News feed
	NewsFeedURL string `env:"NEWS_FEED_URL" envDefault:"https://news.itmo.ru/ru/rss/"`

	// Outbound fetches (wiki + news share these)
	FetchTimeoutSec float64 `env:"FETCH_TIMEOUT_SEC" envDefault:"10"`
	FetchRPS        float64 `env:"FETCH_RPS" envDefault:"2"`
	FetchBurst      int     `env:"FETCH_BURST" envDefault:"4"`

	// Evidence cache
	CacheProvider string `env:"CACHE_PROVIDER" envDefault:"memory"` // "redis", "memory" or "noop"
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTLSec   int    `env:"CACHE_TTL_SEC" envDefault:"300"`

	// Request history (audit trail; off unless configured)
	HistoryProvider string `env:"HISTORY_PROVIDER" envDefault:"noop"` // "postgres" or "noop"
	DBURL           string `env:"DB_URL"`

	// Answered-request events (off unless configured)
	EventsProvider string `env:"EVENTS_PROVIDER" envDefault:"noop"` // "nats" or "noop"
	NATSURL        string `env:"NATS_URL"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
