package config

import "time"

// RateLimitConfig configures the Redis token bucket in front of the
// metadata endpoints.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
	Debug          bool
}

func loadRateLimitConfig(e *env) RateLimitConfig {
	def := RateLimitConfig{
		Enabled:        e.bool("RATE_LIMIT_ENABLED", true),
		Capacity:       e.int("RATE_LIMIT_CAPACITY", 60),
		RefillTokens:   e.int("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: e.dur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
		TTL:            e.dur("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    e.str("RATE_LIMIT_KEY_STRATEGY", "ip_user_route"),
		Prefix:         e.str("RATE_LIMIT_PREFIX", "rl"),
		Debug:          e.bool("RATE_LIMIT_DEBUG", false),
	}
	if b := e.int("RATE_LIMIT_BURST", -1); b > 0 {
		def.Capacity = b
	}
	if every := e.dur("RATE_LIMIT_REFILL_EVERY", 0); every > 0 {
		def.RefillTokens = 1
		def.RefillInterval = every
	}
	if def.Capacity < 1 {
		def.Capacity = 1
	}
	if def.RefillTokens < 1 {
		def.RefillTokens = 1
	}
	if def.RefillInterval <= 0 {
		def.RefillInterval = time.Second
	}
	// keep a bucket alive for at least a few refills
	if minTTL := 5 * def.RefillInterval; def.TTL < minTTL {
		def.TTL = minTTL
	}
	return def
}
