package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/event-booking/internal/config"
)

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	body := []byte(`{"ok":true}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(bs)
	if !ok {
		t.Fatal("decode failed")
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Fatalf("header = %v", gotHdr)
	}
	if string(gotBody) != string(body) {
		t.Fatalf("body = %q", gotBody)
	}
}

func TestDecodePayloadTruncated(t *testing.T) {
	for _, bs := range [][]byte{nil, {1, 2, 3}, make([]byte, 7)} {
		if _, _, _, ok := decodePayload(bs); ok {
			t.Fatalf("decode accepted %d bytes", len(bs))
		}
	}
	// Header length pointing past the buffer.
	bs := []byte{0, 0, 0, 200, 0, 0, 1, 0}
	if _, _, _, ok := decodePayload(bs); ok {
		t.Fatal("decode accepted inconsistent header length")
	}
}

func cacheCtx(path, query string) echo.Context {
	e := echo.New()
	target := path
	if query != "" {
		target += "?" + query
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)
	return c
}

func TestCacheKeyStrategies(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	same := cacheKeyFrom(cfg, cacheCtx("/v1/events", "page=1"))
	if same != cacheKeyFrom(cfg, cacheCtx("/v1/events", "page=1")) {
		t.Fatal("identical requests produced different keys")
	}
	if same == cacheKeyFrom(cfg, cacheCtx("/v1/events", "page=2")) {
		t.Fatal("route_query ignored the query string")
	}

	cfg.KeyStrategy = "route"
	if cacheKeyFrom(cfg, cacheCtx("/v1/events", "page=1")) != cacheKeyFrom(cfg, cacheCtx("/v1/events", "page=2")) {
		t.Fatal("route strategy should ignore the query string")
	}
}

func TestCacheDisabledPassthrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)
	c := cacheCtx("/v1/events", "")
	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil || !called {
		t.Fatalf("err=%v called=%v", err, called)
	}
}

func TestRateLimitKeyStrategies(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_user_route"}

	c := cacheCtx("/v1/events", "")
	key := buildRateKey(cfg, c)
	if key == "" {
		t.Fatal("empty key")
	}
	// Anonymous requests share the anon bucket per ip and route.
	if key != buildRateKey(cfg, cacheCtx("/v1/events", "")) {
		t.Fatal("identical anonymous requests produced different keys")
	}

	c2 := cacheCtx("/v1/events", "")
	c2.Set("user_id", float64(9))
	if key == buildRateKey(cfg, c2) {
		t.Fatal("authenticated key equals anonymous key")
	}
}
