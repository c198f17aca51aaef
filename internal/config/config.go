// Package config loads application configuration from environment
// variables.  A .env file in the working directory is read first when
// present; variables already set in the environment win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

// Catalog sources.
const (
	CatalogStatic = "static"
	CatalogMySQL  = "mysql"
)

// Config holds all runtime configuration values.
type Config struct {
	Env       string // application environment (dev, test, prod)
	Port      string // HTTP port to listen on
	LogLevel  string
	LogFormat string // text or json
	LogFile   string // optional file receiving a copy of the logs

	CORSOrigins []string

	CatalogSource string // static or mysql
	DB            DBConfig
	Redis         RedisConfig
	Cache         CacheConfig
	RateLimit     RateLimitConfig

	IdentitySecret string        // HS256 secret shared with the identity provider
	DevTokenTTL    time.Duration // lifetime of tokens issued by the token command

	TMDBBaseURL string
	TMDBAPIKey  string
	TMDBTimeout time.Duration

	AMQPURL        string // RabbitMQ URL; empty disables the booking hand-off
	BookingLogDir  string // directory of booking.log written by the consumer
	SessionTTL     time.Duration
	SessionPrefix  string
	PriceStandard  int64 // 2D seat price in rupees
	PriceImmersive int64 // 3D seat price in rupees
}

// DBConfig holds the MySQL connection settings of the SQL catalog.
type DBConfig struct {
	User string
	Pass string
	Host string
	Port string
	Name string
}

// Load reads the configuration.  Malformed values are reported together
// in the returned error; missing values take their defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	e := &env{}
	cfg := Config{
		Env:         e.str("APP_ENV", "dev"),
		Port:        e.str("APP_PORT", "8080"),
		LogLevel:    e.str("LOG_LEVEL", "info"),
		LogFormat:   e.str("LOG_FORMAT", ""),
		LogFile:     e.str("LOG_FILE", ""),
		CORSOrigins: e.list("CORS_ORIGINS", "*"),

		CatalogSource: e.str("CATALOG_SOURCE", CatalogStatic),
		DB: DBConfig{
			User: e.str("DB_USER", "root"),
			Pass: e.str("DB_PASS", ""),
			Host: e.str("DB_HOST", "127.0.0.1"),
			Port: e.str("DB_PORT", "3306"),
			Name: e.str("DB_NAME", "cinema_dashboard"),
		},
		Redis:     loadRedisConfig(e),
		Cache:     loadCacheConfig(e),
		RateLimit: loadRateLimitConfig(e),

		IdentitySecret: e.str("IDENTITY_SECRET", ""),
		DevTokenTTL:    e.dur("DEV_TOKEN_TTL", 24*time.Hour),

		TMDBBaseURL: e.str("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBAPIKey:  e.str("TMDB_API_KEY", ""),
		TMDBTimeout: e.dur("TMDB_TIMEOUT", 10*time.Second),

		AMQPURL:        e.str("RABBITMQ_URL", e.str("AMQP_URL", "")),
		BookingLogDir:  e.str("BOOKING_LOG_DIR", "logs"),
		SessionTTL:     e.dur("SESSION_TTL", 2*time.Hour),
		SessionPrefix:  e.str("SESSION_PREFIX", "session"),
		PriceStandard:  e.int64("PRICE_2D", 200),
		PriceImmersive: e.int64("PRICE_3D", 250),
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
		if cfg.Env == "dev" {
			cfg.LogFormat = "text"
		}
	}
	if cfg.CatalogSource != CatalogStatic && cfg.CatalogSource != CatalogMySQL {
		e.errs = append(e.errs, fmt.Errorf("invalid CATALOG_SOURCE: %q", cfg.CatalogSource))
	}
	if cfg.PriceStandard < 0 || cfg.PriceImmersive < 0 {
		e.errs = append(e.errs, errors.New("seat prices must not be negative"))
	}
	if err := e.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
