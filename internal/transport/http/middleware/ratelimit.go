package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"corecrew/internal/transport/http/api"
)

// sweepThreshold is the client count above which expired windows are pruned.
const sweepThreshold = 1024

// bulkPaths rewrite many payroll rows per call.
var bulkPaths = map[string]bool{
	"/payroll/process":             true,
	"/payroll/processing/begin":    true,
	"/payroll/processing/complete": true,
	"/payroll/generate":            true,
	"/jobs/payroll-generate":       true,
}

// LimitOption adjusts how a limiter identifies clients.
type LimitOption func(*limiterOptions)

type limiterOptions struct {
	trustProxy bool
}

// TrustForwardedFor keys clients by the first X-Forwarded-For hop. Only use it
// behind a proxy that overwrites the header.
func TrustForwardedFor(trust bool) LimitOption {
	return func(o *limiterOptions) { o.trustProxy = trust }
}

// RateLimit allows limit requests per client IP in each fixed window.
func RateLimit(limit int, window time.Duration, opts ...LimitOption) func(http.Handler) http.Handler {
	return throttle(newFixedWindow(limit, window), func(*http.Request) bool { return true }, opts)
}

// SensitiveMutationRateLimit gives bulk payroll and job endpoints a quarter of
// the base budget, counted separately from ordinary traffic.
func SensitiveMutationRateLimit(baseLimit int, window time.Duration, opts ...LimitOption) func(http.Handler) http.Handler {
	return throttle(newFixedWindow(max(baseLimit/4, 1), window), isBulkMutation, opts)
}

func throttle(fw *fixedWindow, applies func(*http.Request) bool, opts []LimitOption) func(http.Handler) http.Handler {
	var o limiterOptions
	for _, opt := range opts {
		opt(&o)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if fw.limit <= 0 || !applies(r) {
				next.ServeHTTP(w, r)
				return
			}
			key := clientIP(r, o.trustProxy)
			q := fw.take(key)
			headers := w.Header()
			headers.Set("X-RateLimit-Limit", strconv.Itoa(fw.limit))
			headers.Set("X-RateLimit-Remaining", strconv.Itoa(q.remaining))
			headers.Set("X-RateLimit-Reset", strconv.Itoa(q.resetSec))
			if !q.allowed {
				headers.Set("Retry-After", strconv.Itoa(max(q.resetSec, 1)))
				slog.Warn("rate limit exceeded", "client", key, "method", r.Method, "path", r.URL.Path, "limit", fw.limit)
				api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type quota struct {
	allowed   bool
	remaining int
	resetSec  int
}

type windowState struct {
	used  int
	until time.Time
}

type fixedWindow struct {
	limit  int
	length time.Duration
	now    func() time.Time

	mu      sync.Mutex
	clients map[string]*windowState
}

func newFixedWindow(limit int, length time.Duration) *fixedWindow {
	return &fixedWindow{limit: limit, length: length, now: time.Now, clients: map[string]*windowState{}}
}

func (fw *fixedWindow) take(key string) quota {
	now := fw.now()
	fw.mu.Lock()
	defer fw.mu.Unlock()

	state, ok := fw.clients[key]
	if !ok || !now.Before(state.until) {
		if len(fw.clients) >= sweepThreshold {
			fw.sweep(now)
		}
		state = &windowState{until: now.Add(fw.length)}
		fw.clients[key] = state
	}
	state.used++
	return quota{
		allowed:   state.used <= fw.limit,
		remaining: max(fw.limit-state.used, 0),
		resetSec:  ceilSeconds(state.until.Sub(now)),
	}
}

// sweep drops expired windows. Caller holds mu.
func (fw *fixedWindow) sweep(now time.Time) {
	for key, state := range fw.clients {
		if !now.Before(state.until) {
			delete(fw.clients, key)
		}
	}
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

func isBulkMutation(r *http.Request) bool {
	return r.Method == http.MethodPost && bulkPaths[strings.TrimPrefix(r.URL.Path, "/api/v1")]
}

// clientIP is the peer address, or the first X-Forwarded-For hop when the
// proxy in front is trusted.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ","); strings.TrimSpace(first) != "" {
			return strings.TrimSpace(first)
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
