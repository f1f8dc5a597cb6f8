package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedHandler(l *RateLimiter) http.Handler {
	return l.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/candidates", nil)
	req.RemoteAddr = addr
	return req
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewRateLimiter(DefaultRateLimitConfig(1, 2))
	l.now = func() time.Time { return now }
	h := limitedHandler(l)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("10.0.0.1:5000"))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("10.0.0.1:5001"))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "COMMON_007", body["code"])

	// Other clients have their own bucket.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("10.0.0.2:5000"))
	assert.Equal(t, http.StatusOK, rec.Code)

	// A rejected request does not consume future tokens.
	now = now.Add(time.Second)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_SweepsIdleKeys(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := DefaultRateLimitConfig(5, 5)
	cfg.IdleTTL = time.Minute
	l := NewRateLimiter(cfg)
	l.now = func() time.Time { return now }
	h := limitedHandler(l)

	h.ServeHTTP(httptest.NewRecorder(), requestFrom("10.0.0.1:1"))
	h.ServeHTTP(httptest.NewRecorder(), requestFrom("10.0.0.2:1"))
	assert.Equal(t, 2, l.Len())

	now = now.Add(2 * time.Minute)
	h.ServeHTTP(httptest.NewRecorder(), requestFrom("10.0.0.3:1"))
	assert.Equal(t, 1, l.Len())
}

func TestClientIP(t *testing.T) {
	assert.Equal(t, "192.0.2.7", ClientIP(requestFrom("192.0.2.7:443")))
	assert.Equal(t, "192.0.2.7", ClientIP(requestFrom("192.0.2.7")))
}

//Personal.AI order the ending
