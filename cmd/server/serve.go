package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/catalog"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/config"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/database"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/handler"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/logger"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/queue"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/router"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/service"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/session"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/tmdb"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

// setup loads the configuration and installs the logger.
func setup() (config.Config, *slog.Logger, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("config: %w", err)
	}
	log, closer, err := logger.Setup(logger.Options{Format: cfg.LogFormat, Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, log, func() { _ = closer.Close() }, nil
}

// openCatalog returns the configured catalog provider and a cleanup func.
func openCatalog(ctx context.Context, cfg config.Config) (catalog.Provider, func(), error) {
	if cfg.CatalogSource != config.CatalogMySQL {
		return catalog.NewStatic(), func() {}, nil
	}
	db, err := database.Open(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return catalog.NewSQLRepo(db), func() { _ = db.Close() }, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, closeCatalog, err := openCatalog(ctx, cfg)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	defer closeCatalog()

	rdb := config.NewRedisClient(cfg.Redis)
	var store session.Store
	if rdb != nil {
		defer rdb.Close()
		store = session.NewRedisStore(rdb, cfg.SessionPrefix, cfg.SessionTTL)
	} else {
		log.Warn("redis unavailable: sessions kept in memory, caching and rate limiting disabled", "addr", cfg.Redis.Addr)
		store = session.NewMemoryStore()
	}

	var publisher queue.Publisher = queue.NopPublisher{}
	if cfg.AMQPURL != "" {
		publisher = queue.NewAMQPPublisher(cfg.AMQPURL, log)
	} else {
		log.Warn("RABBITMQ_URL not set: booking hand-off disabled")
	}
	if cfg.IdentitySecret == "" {
		log.Warn("IDENTITY_SECRET not set: every request is signed out")
	}

	pricing := catalog.Pricing{Standard: cfg.PriceStandard, Immersive: cfg.PriceImmersive}
	bookings := service.NewBookingService(store, provider, pricing, publisher, log)
	movies := tmdb.NewClient(&http.Client{Timeout: cfg.TMDBTimeout}, cfg.TMDBBaseURL, cfg.TMDBAPIKey)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "remote_ip", v.RemoteIP}
			if v.Error != nil {
				log.Error("request", append(attrs, "err", v.Error)...)
				return nil
			}
			log.Info("request", attrs...)
			return nil
		},
	}))

	router.RegisterRoutes(e, router.Deps{
		Movies:         handler.NewMovieHandler(movies, log),
		Catalog:        handler.NewCatalogHandler(provider, pricing, log),
		Sessions:       handler.NewSessionHandler(bookings, log),
		IdentitySecret: cfg.IdentitySecret,
		Cache:          cfg.Cache,
		RateLimit:      cfg.RateLimit,
		Redis:          rdb,
		Logger:         log,
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr, "env", cfg.Env, "catalog", cfg.CatalogSource)
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
