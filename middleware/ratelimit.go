package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// staleClientAge is how long an idle client bucket is kept before eviction.
const staleClientAge = 10 * time.Minute

// bucket is one client's token state.
type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter applies a per-client-IP token bucket. Audits fan out into page
// fetches against third-party sites, so the bucket is kept small.
type RateLimiter struct {
	mu         sync.Mutex
	clients    map[string]*bucket
	rate       float64 // tokens refilled per second
	bucketSize float64
	lastSweep  time.Time
}

func NewRateLimiter(rate, bucketSize float64) *RateLimiter {
	return &RateLimiter{
		clients:    make(map[string]*bucket),
		rate:       rate,
		bucketSize: bucketSize,
		lastSweep:  time.Now(),
	}
}

// allow refills the client's bucket for the elapsed time and tries to take
// one token. Callers must not hold rl.mu.
func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	b, ok := rl.clients[ip]
	if !ok {
		b = &bucket{tokens: rl.bucketSize}
		rl.clients[ip] = b
	} else {
		b.tokens += now.Sub(b.lastSeen).Seconds() * rl.rate
		if b.tokens > rl.bucketSize {
			b.tokens = rl.bucketSize
		}
	}
	b.lastSeen = now

	if now.Sub(rl.lastSweep) > staleClientAge {
		rl.sweepLocked(now)
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// sweepLocked drops buckets idle past staleClientAge. Caller holds rl.mu.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	for ip, b := range rl.clients {
		if now.Sub(b.lastSeen) > staleClientAge {
			delete(rl.clients, ip)
		}
	}
	rl.lastSweep = now
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
