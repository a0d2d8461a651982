package config

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"json", "text"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be > 0 (got %v)", c.Server.RequestTimeout)
	}

	if c.Database.MaxConns < 1 {
		return fmt.Errorf("database.max_conns must be >= 1 (got %d)", c.Database.MaxConns)
	}
	if c.Database.StatementTimeout < 0 {
		return fmt.Errorf("database.statement_timeout must be >= 0 (got %v)", c.Database.StatementTimeout)
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns must be in 0..max_conns (got %d)", c.Database.MinConns)
	}

	if !oneOf(c.Log.Level, validLogLevels) {
		return fmt.Errorf("log.level must be one of %v (got %q)", validLogLevels, c.Log.Level)
	}
	if !oneOf(c.Log.Format, validLogFormats) {
		return fmt.Errorf("log.format must be one of %v (got %q)", validLogFormats, c.Log.Format)
	}

	if c.Lexicon.LoadTimeout <= 0 {
		return fmt.Errorf("lexicon.load_timeout must be > 0 (got %v)", c.Lexicon.LoadTimeout)
	}

	if c.Translate.Timeout <= 0 {
		return fmt.Errorf("translate.timeout must be > 0 (got %v)", c.Translate.Timeout)
	}

	if err := c.RateLimit.validate(); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}

	if c.Auth.Enabled() {
		if len(c.Auth.JWTSecret) < 32 {
			return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
		}
		if c.Auth.TokenTTL <= 0 {
			return fmt.Errorf("auth.token_ttl must be > 0 (got %v)", c.Auth.TokenTTL)
		}
	}

	ids, err := ParseChatIDs(c.Bot.AllowedChatIDsRaw)
	if err != nil {
		return fmt.Errorf("bot.allowed_chat_ids: %w", err)
	}
	c.Bot.AllowedChatIDs = ids

	return nil
}

func (r *RateLimitConfig) validate() error {
	if !r.Enabled {
		return nil
	}
	if r.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be > 0 (got %v)", r.RequestsPerSecond)
	}
	if r.Burst < 1 {
		return fmt.Errorf("burst must be >= 1 (got %d)", r.Burst)
	}
	if r.CleanupInterval <= 0 {
		return fmt.Errorf("cleanup_interval must be > 0 (got %v)", r.CleanupInterval)
	}
	return nil
}

// ParseChatIDs parses a comma-separated list of chat ids (e.g. "42,-1001")
// into a slice. An empty string returns a nil slice.
func ParseChatIDs(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chat id %q: %w", p, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}
