package middleware

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// RateLimitConfig holds configuration for the rate limit middleware.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per key.
	RequestsPerSecond float64
	// Burst is the number of requests a fresh key may make at once.
	Burst int
	// KeyFunc extracts the limit key.  Defaults to the client IP.
	KeyFunc func(r *http.Request) string
	// IdleTTL is how long an unused key is kept before it is swept.
	IdleTTL time.Duration
	Metrics *prometheus.AppMetrics
}

// DefaultRateLimitConfig limits by client IP and forgets keys idle for five
// minutes.
func DefaultRateLimitConfig(rps float64, burst int) RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: rps,
		Burst:             burst,
		KeyFunc:           ClientIP,
		IdleTTL:           5 * time.Minute,
	}
}

// ClientIP returns the request's remote host without the port.  chi's RealIP
// middleware has already applied X-Forwarded-For and X-Real-IP by the time
// this runs.
func ClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key.
type RateLimiter struct {
	cfg RateLimitConfig
	now func() time.Time

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = ClientIP
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	return &RateLimiter{cfg: cfg, now: time.Now, visitors: make(map[string]*visitor)}
}

func (l *RateLimiter) visitor(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cfg.IdleTTL > 0 && now.Sub(l.lastSweep) > l.cfg.IdleTTL {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.cfg.IdleTTL {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(l.cfg.RequestsPerSecond), l.cfg.Burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// Len returns the number of tracked keys.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// Handler rejects requests over the limit with 429 and a Retry-After header
// in whole seconds.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := l.now()
		lim := l.visitor(l.cfg.KeyFunc(r), now)

		res := lim.ReserveN(now, 1)
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.cfg.Burst))
		if delay := res.DelayFrom(now); res.OK() && delay == 0 {
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(lim.TokensAt(now))))
			next.ServeHTTP(w, r)
			return
		} else if res.OK() {
			res.CancelAt(now)
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Max(1, math.Ceil(delay.Seconds())))))
		}

		code := errors.ErrCodeTooManyRequests
		prometheus.RecordError(l.cfg.Metrics, "ratelimit", code.String())
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    code.String(),
			"message": errors.DefaultMessageForCode(code),
		})
	})
}

//Personal.AI order the ending
