package gateway

import (
	"net"
	"net/http"
	"sync"

	"shareit/internal/config"
	"shareit/internal/models"

	"golang.org/x/time/rate"
)

// callerLimiter keeps a token bucket per caller, keyed by the identity
// header with the remote address as fallback.
type callerLimiter struct {
	limiters sync.Map
	cfg      config.GatewayRateLimit
}

func newCallerLimiter(cfg config.GatewayRateLimit) *callerLimiter {
	return &callerLimiter{cfg: cfg}
}

func (l *callerLimiter) allow(key string) bool {
	if l.cfg.RPS <= 0 {
		return true
	}
	return l.getLimiter(key).Allow()
}

func (l *callerLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	burst := l.cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	lim := rate.NewLimiter(rate.Limit(l.cfg.RPS), burst)
	actual, loaded := l.limiters.LoadOrStore(key, lim)
	if loaded {
		return actual.(*rate.Limiter)
	}
	return lim
}

func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.allow(clientKey(r)) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	if caller := r.Header.Get(models.HeaderUserID); caller != "" {
		return caller
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return "unknown"
}
