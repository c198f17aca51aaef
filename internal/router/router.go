// Package router registers the HTTP routes of the dashboard API.
package router

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/config"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/handler"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/middleware"
)

// Deps bundles the handlers and shared infrastructure the routes need.
// Redis may be nil, which turns caching and rate limiting off.
type Deps struct {
	Movies         *handler.MovieHandler
	Catalog        *handler.CatalogHandler
	Sessions       *handler.SessionHandler
	IdentitySecret string
	Cache          config.CacheConfig
	RateLimit      config.RateLimitConfig
	Redis          *redis.Client
	Logger         *slog.Logger
}

// RegisterRoutes mounts every route on e.  The identity middleware runs for
// all /v1 routes but never rejects a request.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health(d.Redis))

	v1 := e.Group("/v1", middleware.Identity(d.IdentitySecret, d.Logger))
	v1.GET("/me", handler.Me)

	registerMetadata(v1, d)
	registerCatalog(v1, d.Catalog)
	registerSessions(v1, d.Sessions)
}

// registerMetadata mounts the movie endpoints behind the rate limiter and
// the response cache.  Limiting runs first so cache hits are counted too.
func registerMetadata(g *echo.Group, d Deps) {
	meta := g.Group("",
		middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Logger),
		middleware.NewRedisCache(d.Cache, d.Redis),
	)
	meta.GET("/movies", d.Movies.ListMovies)
	meta.GET("/movies/search", d.Movies.Search)
	meta.GET("/movies/:id", d.Movies.Details)
	meta.GET("/genres", d.Movies.Genres)
}

func registerCatalog(g *echo.Group, h *handler.CatalogHandler) {
	g.GET("/theaters", h.Theaters)
	g.GET("/menu", h.Menu)
}

func registerSessions(g *echo.Group, h *handler.SessionHandler) {
	s := g.Group("/sessions")
	s.POST("", h.Create)
	s.GET("/:id", h.Get)
	s.DELETE("/:id", h.Delete)

	// showtime wizard
	s.POST("/:id/showtime", h.OpenShowtime)
	s.GET("/:id/showtime", h.GetShowtime)
	s.DELETE("/:id/showtime", h.CancelShowtime)
	s.PUT("/:id/showtime/:step", h.SelectStep)
	s.POST("/:id/showtime/confirm", h.ConfirmShowtime)

	// seat map
	s.GET("/:id/seats", h.GetSeats)
	s.GET("/:id/seats/placements", h.Placements)
	s.POST("/:id/seats/:seat/toggle", h.ToggleSeat)
	s.DELETE("/:id/seats/selection", h.ClearSeats)
	s.POST("/:id/seats/confirm", h.ConfirmSeats)

	// cart
	s.GET("/:id/cart", h.GetCart)
	s.DELETE("/:id/cart", h.ClearCart)
	s.POST("/:id/cart/items/:item", h.AddItem)
	s.DELETE("/:id/cart/items/:item", h.RemoveItem)
}
