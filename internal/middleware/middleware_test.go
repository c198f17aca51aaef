package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/config"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/identity"
)

const testSecret = "mw-secret"

func whoAmI(c echo.Context) error {
	return c.String(http.StatusOK, userID(c))
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIdentityMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(Identity(testSecret, nil))
	e.GET("/who", whoAmI)

	token, _, err := identity.Issue(testSecret, identity.Principal{Subject: "user-7", Name: "Ravi"}, time.Hour)
	require.NoError(t, err)

	cases := map[string]struct {
		header string
		want   string
	}{
		"signed in":    {"Bearer " + token, "user-7"},
		"no header":    {"", "guest"},
		"bad token":    {"Bearer nope", "guest"},
		"wrong scheme": {"Basic " + token, "guest"},
		"wrong secret": {"Bearer " + mustIssue(t, "other"), "guest"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/who", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			rec := serve(e, req)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.want, rec.Body.String())
		})
	}
}

func mustIssue(t *testing.T, secret string) string {
	t.Helper()
	tok, _, err := identity.Issue(secret, identity.Principal{Subject: "x"}, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestCacheable(t *testing.T) {
	h := http.Header{}
	assert.True(t, cacheable(http.StatusOK, h))
	assert.False(t, cacheable(http.StatusNotFound, h))
	h.Set(echo.HeaderCacheControl, "max-age=0, no-store")
	assert.False(t, cacheable(http.StatusOK, h))
}

func TestPayloadRoundTrip(t *testing.T) {
	h := http.Header{}
	h.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	bs, err := encodePayload(http.StatusOK, h, []byte(`{"items":[]}`))
	require.NoError(t, err)

	status, hdr, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, echo.MIMEApplicationJSON, hdr.Get(echo.HeaderContentType))
	assert.Equal(t, `{"items":[]}`, string(body))

	_, _, _, ok = decodePayload([]byte{0, 1})
	assert.False(t, ok)
}

func TestRedisCacheHit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute, Prefix: "cache"}

	e := echo.New()
	called := false
	e.GET("/v1/genres", func(c echo.Context) error {
		called = true
		return c.JSON(http.StatusOK, echo.Map{"items": []string{}})
	}, NewRedisCache(cfg, db))

	req := httptest.NewRequest(http.MethodGet, "/v1/genres", nil)
	keyCtx := e.NewContext(req, httptest.NewRecorder())
	keyCtx.SetPath("/v1/genres")
	key := cacheKeyFrom(cfg, keyCtx)

	h := http.Header{}
	h.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	payload, err := encodePayload(http.StatusOK, h, []byte(`{"items":["cached"]}`))
	require.NoError(t, err)
	mock.ExpectGet(key).SetVal(string(payload))

	rec := serve(e, req)
	assert.False(t, called)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"items":["cached"]}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheKeyPerMovie(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache"}
	e := echo.New()
	keys := map[string]string{}
	e.GET("/v1/movies/:id", func(c echo.Context) error {
		keys[c.Param("id")] = cacheKeyFrom(cfg, c)
		return c.NoContent(http.StatusOK)
	})

	serve(e, httptest.NewRequest(http.MethodGet, "/v1/movies/550", nil))
	serve(e, httptest.NewRequest(http.MethodGet, "/v1/movies/27205", nil))
	require.Len(t, keys, 2)
	assert.NotEqual(t, keys["550"], keys["27205"])
}

func TestRedisCacheMissForOtherMovie(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute, Prefix: "cache"}

	e := echo.New()
	var served []string
	e.GET("/v1/movies/:id", func(c echo.Context) error {
		served = append(served, c.Param("id"))
		return c.String(http.StatusOK, "movie "+c.Param("id"))
	}, NewRedisCache(cfg, db))

	keyFor := func(path string) string {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, path, nil), httptest.NewRecorder())
		c.SetPath("/v1/movies/:id")
		return cacheKeyFrom(cfg, c)
	}
	payload, err := encodePayload(http.StatusOK, http.Header{}, []byte("movie 1"))
	require.NoError(t, err)
	mock.ExpectGet(keyFor("/v1/movies/1")).SetVal(string(payload))
	mock.ExpectGet(keyFor("/v1/movies/2")).RedisNil()

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/v1/movies/1", nil))
	assert.Equal(t, "movie 1", rec.Body.String())
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/v1/movies/2", nil))
	assert.Equal(t, "movie 2", rec.Body.String())
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, []string{"2"}, served)
}

func TestStorableHeaderDropsRateLimit(t *testing.T) {
	h := http.Header{}
	h.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	h.Set("X-RateLimit-Limit", "60")
	h.Set("X-RateLimit-Remaining", "59")
	h.Set("X-Cache", "MISS")

	out := storableHeader(h)
	assert.Equal(t, echo.MIMEApplicationJSON, out.Get(echo.HeaderContentType))
	assert.Empty(t, out.Get("X-RateLimit-Remaining"))
	assert.Empty(t, out.Get("X-RateLimit-Limit"))
	assert.Empty(t, out.Get("X-Cache"))
	assert.Equal(t, "59", h.Get("X-RateLimit-Remaining"))
}

func TestRedisCacheHitKeepsFreshRateLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute, Prefix: "cache"}

	e := echo.New()
	setRemaining := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-RateLimit-Remaining", "9")
			return next(c)
		}
	}
	e.GET("/v1/genres", func(c echo.Context) error {
		return c.String(http.StatusOK, "fresh")
	}, setRemaining, NewRedisCache(cfg, db))

	req := httptest.NewRequest(http.MethodGet, "/v1/genres", nil)
	keyCtx := e.NewContext(req, httptest.NewRecorder())
	stale := http.Header{}
	stale.Set("X-RateLimit-Remaining", "3")
	payload, err := encodePayload(http.StatusOK, stale, []byte("cached"))
	require.NoError(t, err)
	mock.ExpectGet(cacheKeyFrom(cfg, keyCtx)).SetVal(string(payload))

	rec := serve(e, req)
	assert.Equal(t, "cached", rec.Body.String())
	assert.Equal(t, []string{"9"}, rec.Header().Values("X-RateLimit-Remaining"))
}

func TestRedisCacheDisabledPassesThrough(t *testing.T) {
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, "fresh") },
		NewRedisCache(config.CacheConfig{Enabled: false}, nil))
	rec := serve(e, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, "fresh", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/movies", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/movies")

	cfg := config.RateLimitConfig{Prefix: "rl"}
	assert.Equal(t, "rl:ip:10.0.0.1:user:guest:route:GET /v1/movies", buildRateKey(cfg, c))

	c.Set(principalKey, &identity.Principal{Subject: "u9"})
	cfg.KeyStrategy = "user"
	assert.Equal(t, "rl:user:u9", buildRateKey(cfg, c))
}

func TestParseBucketResult(t *testing.T) {
	allowed, remaining, retry, ok := parseBucketResult([]interface{}{int64(0), int64(0), int64(1500)})
	require.True(t, ok)
	assert.False(t, allowed)
	assert.Zero(t, remaining)
	assert.Equal(t, int64(1500), retry)

	_, _, _, ok = parseBucketResult("OK")
	assert.False(t, ok)
}
