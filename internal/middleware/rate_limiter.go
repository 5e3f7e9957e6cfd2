package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/apierror"

	"github.com/gin-gonic/gin"
)

type clientWindow struct {
	count int
	reset time.Time
}

type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
}

// RateLimiter allows up to limit requests per client IP per fixed window.
// Stale windows are swept on each pass so the map does not grow with
// one-off clients.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	rl := &rateLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
	}

	go rl.sweep()

	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.Header("Retry-After", window.String())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("too many requests, try again shortly"))
			return
		}
		c.Next()
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cw := rl.clients[ip]
	if cw == nil || now.After(cw.reset) {
		cw = &clientWindow{reset: now.Add(rl.window)}
		rl.clients[ip] = cw
	}
	cw.count++
	return cw.count <= rl.limit
}

func (rl *rateLimiter) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		rl.mu.Lock()
		for ip, cw := range rl.clients {
			if now.After(cw.reset) {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}
