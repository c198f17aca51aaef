package tmdb

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/model"
)

// MaxResults bounds every movie list.  Only the first page is read.
const MaxResults = 10

// Kind selects the endpoint a Criteria is served from.
type Kind string

const (
	KindTrending Kind = "trending"
	KindLanguage Kind = "language"
	KindKeyword  Kind = "keyword"
	KindQuery    Kind = "query"
	KindGenre    Kind = "genre"
)

// ErrUnknownList is returned by Named for a list name it does not know.
var ErrUnknownList = errors.New("unknown movie list")

// Criteria describes a movie list.  Value carries the language code,
// keyword id, free-text query or genre id depending on Kind; Region is only
// used by language lists.
type Criteria struct {
	Kind   Kind
	Value  string
	Region string
}

// named lists shown on the home page
var named = map[string]Criteria{
	"trending":     {Kind: KindTrending},
	"bollywood":    {Kind: KindLanguage, Value: "hi", Region: "IN"},
	"hollywood":    {Kind: KindLanguage, Value: "en"},
	"marvel":       {Kind: KindKeyword, Value: "180547"},
	"dc":           {Kind: KindKeyword, Value: "8828"},
	"f1":           {Kind: KindQuery, Value: "formula 1 racing"},
	"fast-furious": {Kind: KindQuery, Value: "fast and furious"},
}

// Named returns the criteria of a home page list.
func Named(name string) (Criteria, error) {
	c, ok := named[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Criteria{}, fmt.Errorf("%w: %q", ErrUnknownList, name)
	}
	return c, nil
}

// ListNames returns the names accepted by Named.
func ListNames() []string {
	return []string{"trending", "bollywood", "hollywood", "marvel", "dc", "f1", "fast-furious"}
}

// request maps criteria onto an API path and its query parameters.
func (c Criteria) request() (string, url.Values, error) {
	params := url.Values{}
	switch c.Kind {
	case KindTrending:
		return "/trending/movie/day", params, nil
	case KindLanguage:
		if c.Value == "" {
			return "", nil, errors.New("language criteria needs a language code")
		}
		params.Set("with_original_language", c.Value)
		if c.Region != "" {
			params.Set("region", c.Region)
		}
	case KindKeyword:
		if c.Value == "" {
			return "", nil, errors.New("keyword criteria needs a keyword id")
		}
		params.Set("with_keywords", c.Value)
	case KindGenre:
		if _, err := strconv.ParseInt(c.Value, 10, 64); err != nil {
			return "", nil, fmt.Errorf("genre criteria needs a numeric id: %q", c.Value)
		}
		params.Set("with_genres", c.Value)
	case KindQuery:
		if strings.TrimSpace(c.Value) == "" {
			return "", nil, errors.New("query criteria needs a search term")
		}
		params.Set("query", c.Value)
		params.Set("sort_by", "popularity.desc")
		return "/search/movie", params, nil
	default:
		return "", nil, fmt.Errorf("unknown criteria kind %q", c.Kind)
	}
	params.Set("sort_by", "popularity.desc")
	return "/discover/movie", params, nil
}

type listResponse struct {
	Page    int           `json:"page"`
	Results []model.Movie `json:"results"`
}

// ListMovies fetches the first page of a list and keeps at most MaxResults
// movies.  The returned slice is never nil on success.
func (c *Client) ListMovies(ctx context.Context, crit Criteria) ([]model.Movie, error) {
	path, params, err := crit.request()
	if err != nil {
		return nil, err
	}
	var resp listResponse
	if err := c.getJSON(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	movies := resp.Results
	if len(movies) > MaxResults {
		movies = movies[:MaxResults]
	}
	if movies == nil {
		movies = []model.Movie{}
	}
	return movies, nil
}

// Genres fetches the movie genre list.
func (c *Client) Genres(ctx context.Context) ([]model.Genre, error) {
	var resp struct {
		Genres []model.Genre `json:"genres"`
	}
	if err := c.getJSON(ctx, "/genre/movie/list", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Genres == nil {
		resp.Genres = []model.Genre{}
	}
	return resp.Genres, nil
}

// Details fetches the full record of one movie.
func (c *Client) Details(ctx context.Context, id int64) (model.MovieDetail, error) {
	var d model.MovieDetail
	if err := c.getJSON(ctx, "/movie/"+strconv.FormatInt(id, 10), nil, &d); err != nil {
		return model.MovieDetail{}, err
	}
	return d, nil
}

// PosterURL returns the absolute poster URL, or "" without a path.
func PosterURL(path string) string {
	if path == "" {
		return ""
	}
	return PosterBaseURL + path
}

// BackdropURL returns the absolute backdrop URL, or "" without a path.
func BackdropURL(path string) string {
	if path == "" {
		return ""
	}
	return BackdropBaseURL + path
}

// FormatRating converts a ten point vote average to a five star rating
// rounded to one decimal.
func FormatRating(voteAverage float64) float64 {
	return math.Round(voteAverage/2*10) / 10
}
