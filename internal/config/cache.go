package config

import (
	"strings"
	"time"
)

// CacheConfig defines settings for the response cache middleware.
// When Enabled is false or no Redis client is configured, caching is
// disabled.  Methods lists the HTTP methods to cache.  KeyStrategy
// determines which parts of the request contribute to the cache key.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	KeyStrategy  string
	Prefix       string
	MaxBodyBytes int
}

func loadCacheConfig(e *env) CacheConfig {
	return CacheConfig{
		Enabled:      e.bool("CACHE_ENABLED", true),
		Methods:      parseMethods(e.list("CACHE_METHODS", "GET")),
		TTL:          e.dur("CACHE_TTL", 5*time.Minute),
		KeyStrategy:  e.str("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       e.str("CACHE_PREFIX", "cache"),
		MaxBodyBytes: e.int("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}

func parseMethods(list []string) map[string]bool {
	m := map[string]bool{}
	for _, p := range list {
		m[strings.ToUpper(p)] = true
	}
	return m
}
