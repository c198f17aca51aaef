package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/model"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/tmdb"
)

// MovieSource is the metadata provider as the movie handlers use it.
type MovieSource interface {
	ListMovies(ctx context.Context, crit tmdb.Criteria) ([]model.Movie, error)
	Genres(ctx context.Context) ([]model.Genre, error)
	Details(ctx context.Context, id int64) (model.MovieDetail, error)
}

// MovieHandler serves the movie carousels, search and detail page.
type MovieHandler struct {
	Source MovieSource
	Logger *slog.Logger
}

// NewMovieHandler constructs a MovieHandler.
func NewMovieHandler(src MovieSource, logger *slog.Logger) *MovieHandler {
	return &MovieHandler{Source: src, Logger: orDefault(logger)}
}

// MovieView is a movie record with absolute image URLs and a five star
// rating.
type MovieView struct {
	model.Movie
	PosterURL   string  `json:"poster_url"`
	BackdropURL string  `json:"backdrop_url,omitempty"`
	Rating      float64 `json:"rating"`
}

func toMovieViews(movies []model.Movie) []MovieView {
	out := make([]MovieView, 0, len(movies))
	for _, m := range movies {
		out = append(out, MovieView{
			Movie:       m,
			PosterURL:   tmdb.PosterURL(m.PosterPath),
			BackdropURL: tmdb.BackdropURL(m.BackdropPath),
			Rating:      tmdb.FormatRating(m.VoteAverage),
		})
	}
	return out
}

// degraded answers a failed metadata fetch: the failure is logged and the
// client gets an empty list that no cache may keep.
func (h *MovieHandler) degraded(c echo.Context, what string, err error) error {
	h.Logger.Warn("metadata fetch failed", "what", what, "err", err)
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.JSON(http.StatusOK, echo.Map{"items": []MovieView{}, "degraded": true})
}

func (h *MovieHandler) list(c echo.Context, name string, crit tmdb.Criteria) error {
	movies, err := h.Source.ListMovies(c.Request().Context(), crit)
	if err != nil {
		if errors.Is(err, tmdb.ErrMetadataFetchFailed) {
			return h.degraded(c, name, err)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toMovieViews(movies), "degraded": false})
}

// ListMovies handles GET /v1/movies.  ?genre=<id> lists a genre; otherwise
// ?list=<name> selects a named list, trending by default.
func (h *MovieHandler) ListMovies(c echo.Context) error {
	if g := strings.TrimSpace(c.QueryParam("genre")); g != "" {
		if _, err := strconv.ParseInt(g, 10, 64); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre id"})
		}
		return h.list(c, "genre "+g, tmdb.Criteria{Kind: tmdb.KindGenre, Value: g})
	}
	name := c.QueryParam("list")
	if name == "" {
		name = "trending"
	}
	crit, err := tmdb.Named(name)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error(), "lists": tmdb.ListNames()})
	}
	return h.list(c, name, crit)
}

// Search handles GET /v1/movies/search?q=.
func (h *MovieHandler) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q is required"})
	}
	return h.list(c, "search", tmdb.Criteria{Kind: tmdb.KindQuery, Value: q})
}

// Genres handles GET /v1/genres.
func (h *MovieHandler) Genres(c echo.Context) error {
	genres, err := h.Source.Genres(c.Request().Context())
	if err != nil {
		h.Logger.Warn("metadata fetch failed", "what", "genres", "err", err)
		c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
		return c.JSON(http.StatusOK, echo.Map{"items": []model.Genre{}, "degraded": true})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": genres, "degraded": false})
}

// Details handles GET /v1/movies/:id.
func (h *MovieHandler) Details(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	d, err := h.Source.Details(c.Request().Context(), id)
	if err != nil {
		c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
		var apiErr *tmdb.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		h.Logger.Warn("metadata fetch failed", "what", "details", "movie", id, "err", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "movie details unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"movie":        d,
		"poster_url":   tmdb.PosterURL(d.PosterPath),
		"backdrop_url": tmdb.BackdropURL(d.BackdropPath),
		"rating":       tmdb.FormatRating(d.VoteAverage),
	})
}
