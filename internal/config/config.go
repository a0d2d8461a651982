package config

import (
	"slices"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Lexicon   LexiconConfig   `yaml:"lexicon"`
	Translate TranslateConfig `yaml:"translate"`
	Bot       BotConfig       `yaml:"bot"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Auth      AuthConfig      `yaml:"auth"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// RequestTimeout bounds the context of each API request.
	RequestTimeout time.Duration `yaml:"request_timeout" env:"SERVER_REQUEST_TIMEOUT" env-default:"15s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// StatementTimeout is set as the session statement_timeout. Zero leaves
	// the server default.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"5s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// LexiconConfig controls how the in-memory index is loaded at startup.
type LexiconConfig struct {
	LoadTimeout time.Duration `yaml:"load_timeout" env:"LEXICON_LOAD_TIMEOUT" env-default:"30s"`
}

// TranslateConfig holds translation provider settings. An empty APIKey
// disables /t and /u.
type TranslateConfig struct {
	APIKey  string        `yaml:"api_key"  env:"TRANSLATE_API_KEY"`
	BaseURL string        `yaml:"base_url" env:"TRANSLATE_BASE_URL"`
	Timeout time.Duration `yaml:"timeout"  env:"TRANSLATE_TIMEOUT"  env-default:"10s"`
}

// Enabled reports whether a provider key is configured.
func (c TranslateConfig) Enabled() bool {
	return c.APIKey != ""
}

// BotConfig holds chat command settings.
type BotConfig struct {
	AllowedChatIDsRaw string `yaml:"allowed_chat_ids" env:"BOT_ALLOWED_CHAT_IDS"`

	// AllowedChatIDs is parsed from AllowedChatIDsRaw during validation.
	AllowedChatIDs []int64 `yaml:"-" env:"-"`
}

// IsChatAllowed reports whether commands from chatID are served.
// An empty allow list serves everyone.
func (c BotConfig) IsChatAllowed(chatID int64) bool {
	return len(c.AllowedChatIDs) == 0 || slices.Contains(c.AllowedChatIDs, chatID)
}

// AuthConfig holds the shared secret bot relays use to sign their requests.
// An empty JWTSecret leaves /api/v1/commands open.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"dante-lexicon"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"AUTH_TOKEN_TTL"  env-default:"720h"`
}

// Enabled reports whether relay tokens are required.
func (c AuthConfig) Enabled() bool {
	return c.JWTSecret != ""
}

// RateLimitConfig holds per-client request limits for the HTTP API.
type RateLimitConfig struct {
	Enabled           bool          `yaml:"enabled"             env:"RATE_LIMIT_ENABLED"             env-default:"true"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"                 env-default:"5"`
	Burst             int           `yaml:"burst"               env:"RATE_LIMIT_BURST"               env-default:"10"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP_INTERVAL"    env-default:"5m"`
}
