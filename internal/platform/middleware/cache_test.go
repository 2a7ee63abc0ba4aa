package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newCacheEcho(mw echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Use(mw)
	e.GET("/api/v1/manufacturers", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"total": 2})
	})
	e.GET("/missing", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, map[string]interface{}{"error": "not found"})
	})
	return e
}

func TestETag_SetsHeaders(t *testing.T) {
	e := newCacheEcho(ETag(SchemaCacheConfig()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/manufacturers", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("expected ETag header")
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "private, max-age=300" {
		t.Errorf("Cache-Control = %q, want private, max-age=300", cc)
	}
	if vary := rec.Header().Get("Vary"); vary != "Accept" {
		t.Errorf("Vary = %q, want Accept", vary)
	}
}

func TestETag_ReturnsNotModified(t *testing.T) {
	e := newCacheEcho(ETag(SchemaCacheConfig()))

	// First request to learn the ETag.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/manufacturers", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("expected ETag header")
	}

	// Second request with If-None-Match must get a 304 without a body.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/manufacturers", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotModified {
		t.Errorf("expected 304, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %d bytes", rec.Body.Len())
	}
}

func TestETag_SkipsErrorResponses(t *testing.T) {
	e := newCacheEcho(ETag(SchemaCacheConfig()))

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec.Header().Get("ETag") != "" {
		t.Error("expected no ETag on error response")
	}
}

func TestETag_SkipsPostRequests(t *testing.T) {
	e := echo.New()
	e.Use(ETag(SchemaCacheConfig()))
	e.POST("/api/v1/mappings/confirm", func(c echo.Context) error {
		return c.JSON(http.StatusCreated, map[string]interface{}{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/mappings/confirm", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Header().Get("ETag") != "" {
		t.Error("expected no ETag on POST response")
	}
}

func TestETag_ExcludedPath(t *testing.T) {
	cfg := SchemaCacheConfig()
	cfg.ExcludePaths = []string{"/api/v1/manufacturers"}
	e := newCacheEcho(ETag(cfg))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/manufacturers", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Header().Get("ETag") != "" {
		t.Error("expected no ETag on excluded path")
	}
}

func TestEtagMatch(t *testing.T) {
	tests := []struct {
		header string
		etag   string
		want   bool
	}{
		{`W/"abc"`, `W/"abc"`, true},
		{`"abc"`, `W/"abc"`, true},
		{`*`, `W/"abc"`, true},
		{`W/"def", W/"abc"`, `W/"abc"`, true},
		{`W/"def"`, `W/"abc"`, false},
	}
	for _, tt := range tests {
		if got := etagMatch(tt.header, tt.etag); got != tt.want {
			t.Errorf("etagMatch(%q, %q) = %v, want %v", tt.header, tt.etag, got, tt.want)
		}
	}
}

func TestResponseCache_HitAndMiss(t *testing.T) {
	store := NewInMemoryCacheStore()
	calls := 0
	e := echo.New()
	e.Use(ResponseCache(store, time.Minute))
	e.GET("/api/v1/manufacturers", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, map[string]interface{}{"total": calls})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/manufacturers", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Header().Get("X-Cache") != "MISS" {
		t.Errorf("first request X-Cache = %q, want MISS", rec.Header().Get("X-Cache"))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/manufacturers", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Header().Get("X-Cache") != "HIT" {
		t.Errorf("second request X-Cache = %q, want HIT", rec.Header().Get("X-Cache"))
	}
	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
}

func TestResponseCache_DoesNotCacheErrors(t *testing.T) {
	store := NewInMemoryCacheStore()
	e := echo.New()
	e.Use(ResponseCache(store, time.Minute))
	e.GET("/missing", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, map[string]interface{}{"error": "not found"})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Header().Get("X-Cache") == "HIT" {
			t.Error("error response must not be served from cache")
		}
	}
}

func TestInMemoryCacheStore_Expiry(t *testing.T) {
	store := NewInMemoryCacheStore()
	store.Set("k", []byte("v"), -time.Second)

	if _, ok := store.Get("k"); ok {
		t.Error("expected expired entry to be a miss")
	}
}

func TestInMemoryCacheStore_DeleteAndClear(t *testing.T) {
	store := NewInMemoryCacheStore()
	store.Set("a", []byte("1"), time.Minute)
	store.Set("b", []byte("2"), time.Minute)

	store.Delete("a")
	if _, ok := store.Get("a"); ok {
		t.Error("expected deleted entry to be a miss")
	}
	if _, ok := store.Get("b"); !ok {
		t.Error("expected remaining entry to be present")
	}

	store.Clear()
	if _, ok := store.Get("b"); ok {
		t.Error("expected cleared store to be empty")
	}
}
