package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewClient(server.Client(), server.URL, "test-key"), server
}

func moviesJSON(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf(`{"id":%d,"title":"Movie %d","poster_path":"/p%d.jpg","vote_average":7.4}`, i+1, i+1, i+1)
	}
	return `{"page":1,"results":[` + strings.Join(parts, ",") + `]}`
}

func TestListMoviesTruncatesToTen(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trending/movie/day", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(moviesJSON(20)))
	})

	movies, err := client.ListMovies(context.Background(), Criteria{Kind: KindTrending})
	require.NoError(t, err)
	require.Len(t, movies, MaxResults)
	assert.Equal(t, "Movie 1", movies[0].Title)
	assert.Equal(t, "/p1.jpg", movies[0].PosterPath)
}

func TestListMoviesRequestParams(t *testing.T) {
	cases := []struct {
		list  string
		path  string
		key   string
		value string
	}{
		{"bollywood", "/discover/movie", "with_original_language", "hi"},
		{"hollywood", "/discover/movie", "with_original_language", "en"},
		{"marvel", "/discover/movie", "with_keywords", "180547"},
		{"dc", "/discover/movie", "with_keywords", "8828"},
		{"f1", "/search/movie", "query", "formula 1 racing"},
		{"fast-furious", "/search/movie", "query", "fast and furious"},
	}
	for _, tc := range cases {
		t.Run(tc.list, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tc.path, r.URL.Path)
				assert.Equal(t, tc.value, r.URL.Query().Get(tc.key))
				assert.Equal(t, "popularity.desc", r.URL.Query().Get("sort_by"))
				_, _ = w.Write([]byte(moviesJSON(3)))
			})
			crit, err := Named(tc.list)
			require.NoError(t, err)
			movies, err := client.ListMovies(context.Background(), crit)
			require.NoError(t, err)
			assert.Len(t, movies, 3)
		})
	}
}

func TestBollywoodUsesRegion(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "IN", r.URL.Query().Get("region"))
		_, _ = w.Write([]byte(moviesJSON(0)))
	})
	crit, err := Named("bollywood")
	require.NoError(t, err)
	movies, err := client.ListMovies(context.Background(), crit)
	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)
}

func TestListMoviesFailureIsNotRetried(t *testing.T) {
	var attempts int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("try later"))
	})

	_, err := client.ListMovies(context.Background(), Criteria{Kind: KindTrending})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMetadataFetchFailed)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "try later", apiErr.Body)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestListMoviesBadJSON(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})
	_, err := client.ListMovies(context.Background(), Criteria{Kind: KindTrending})
	assert.ErrorIs(t, err, ErrMetadataFetchFailed)
}

func TestListMoviesNetworkError(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()
	_, err := client.ListMovies(context.Background(), Criteria{Kind: KindTrending})
	assert.ErrorIs(t, err, ErrMetadataFetchFailed)
}

func TestInvalidCriteria(t *testing.T) {
	client := NewClient(nil, "", "k")
	for _, crit := range []Criteria{
		{Kind: "nope"},
		{Kind: KindQuery, Value: "  "},
		{Kind: KindGenre, Value: "drama"},
		{Kind: KindKeyword},
	} {
		_, err := client.ListMovies(context.Background(), crit)
		assert.Error(t, err, crit)
		assert.NotErrorIs(t, err, ErrMetadataFetchFailed)
	}

	_, err := Named("anime")
	assert.ErrorIs(t, err, ErrUnknownList)
}

func TestGenresAndDetails(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/genre/movie/list":
			_, _ = w.Write([]byte(`{"genres":[{"id":28,"name":"Action"}]}`))
		case "/movie/550":
			_, _ = w.Write([]byte(`{"id":550,"title":"Fight Club","runtime":139,"genres":[{"id":18,"name":"Drama"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	genres, err := client.Genres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Action", genres[0].Name)

	d, err := client.Details(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, "Fight Club", d.Title)
	assert.Equal(t, int64(139), d.Runtime)
	assert.Equal(t, "Drama", d.Genres[0].Name)

	_, err = client.Details(context.Background(), 1)
	assert.ErrorIs(t, err, ErrMetadataFetchFailed)
}

func TestImageURLsAndRating(t *testing.T) {
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/abc.jpg", PosterURL("/abc.jpg"))
	assert.Empty(t, PosterURL(""))
	assert.Equal(t, "https://image.tmdb.org/t/p/w1280/b.jpg", BackdropURL("/b.jpg"))
	assert.Equal(t, 3.7, FormatRating(7.4))
	assert.Equal(t, 4.3, FormatRating(8.567))
	assert.Equal(t, 0.0, FormatRating(0))
}
