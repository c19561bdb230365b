package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// visitor tracks the limiter and last activity for a single client IP.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter hands out one token-bucket limiter per client IP. Buckets refill
// at max requests per window and allow bursts up to max.
type ipLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	window   time.Duration
}

func newIPLimiter(window time.Duration, max int) *ipLimiter {
	l := &ipLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(window / time.Duration(max)),
		burst:    max,
		window:   window,
	}
	go l.cleanup()
	return l
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

// cleanup evicts idle entries so the visitor map does not grow unbounded.
func (l *ipLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-2 * l.window)
		l.mu.Lock()
		for ip, v := range l.visitors {
			if v.lastSeen.Before(cutoff) {
				delete(l.visitors, ip)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimit returns a Gin middleware that limits each client IP to max
// requests per window, responding 429 with the given message when exceeded.
func RateLimit(window time.Duration, max int, message string) gin.HandlerFunc {
	limiter := newIPLimiter(window, max)
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "error": message})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GeneralRateLimit limits all traffic per IP.
func GeneralRateLimit(window time.Duration, max int) gin.HandlerFunc {
	return RateLimit(window, max, "Too many requests from this IP, please try again later")
}

// AuthRateLimit is the tight limiter for authentication endpoints.
func AuthRateLimit(window time.Duration, max int) gin.HandlerFunc {
	return RateLimit(window, max, "Too many authentication attempts, please try again later")
}

// MutatingRateLimit is the moderate limiter for write operations.
func MutatingRateLimit(window time.Duration, max int) gin.HandlerFunc {
	return RateLimit(window, max, "Too many requests for this operation, please try again later")
}
