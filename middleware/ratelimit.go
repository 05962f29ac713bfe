// middleware/ratelimit.go
package middleware

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Token bucket rate limiter implementation
type TokenBucket struct {
	tokens         float64
	maxTokens      float64
	refillRate     float64 // tokens per second
	lastRefillTime time.Time
	mu             sync.Mutex
}

func NewTokenBucket(maxTokens, refillRate float64) *TokenBucket {
	return &TokenBucket{
		tokens:         maxTokens,
		maxTokens:      maxTokens,
		refillRate:     refillRate,
		lastRefillTime: time.Now(),
	}
}

func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefillTime).Seconds()
	tb.tokens += elapsed * tb.refillRate
	if tb.tokens > tb.maxTokens {
		tb.tokens = tb.maxTokens
	}
	tb.lastRefillTime = now

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// Rate limiter storage
type RateLimiter struct {
	buckets map[string]*TokenBucket
	mu      sync.RWMutex

	// Configuration
	maxRequests   int
	windowSeconds int
}

var (
	generalLimiter *RateLimiter
	authLimiter    *RateLimiter
)

func init() {
	// Initialize rate limiters from environment
	generalMaxReq := getEnvInt("RATE_LIMIT_MAX_REQUESTS", 100)        // tokens
	generalWindow := getEnvInt("RATE_LIMIT_WINDOW_MS", 900000) / 1000 // 15 min default
	if generalWindow <= 0 {
		generalWindow = 900 // guard
	}
	authMaxReq := getEnvInt("AUTH_RATE_LIMIT_MAX", 5)
	authWindow := getEnvInt("AUTH_RATE_LIMIT_WINDOW_MS", 300000) / 1000 // 5 min default
	if authWindow <= 0 {
		authWindow = 300
	}

	generalLimiter = NewRateLimiter(generalMaxReq, generalWindow)
	authLimiter = NewRateLimiter(authMaxReq, authWindow)

	// Cleanup old buckets every 10 minutes
	go startCleanupRoutine()
}

func NewRateLimiter(maxRequests, windowSeconds int) *RateLimiter {
	return &RateLimiter{
		buckets:       make(map[string]*TokenBucket),
		maxRequests:   maxRequests,
		windowSeconds: windowSeconds,
	}
}

func (rl *RateLimiter) getBucket(key string) *TokenBucket {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	bucket, exists := rl.buckets[key]
	if !exists {
		refillRate := float64(rl.maxRequests) / float64(rl.windowSeconds) // tokens/sec
		bucket = NewTokenBucket(float64(rl.maxRequests), refillRate)
		rl.buckets[key] = bucket
	}
	return bucket
}

func (rl *RateLimiter) Allow(key string) bool {
	bucket := rl.getBucket(key)
	return bucket.Allow()
}

// Cleanup old buckets periodically
func startCleanupRoutine() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cleanupOldBuckets(generalLimiter)
		cleanupOldBuckets(authLimiter)
	}
}

func cleanupOldBuckets(rl *RateLimiter) {
	if rl == nil {
		return
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, bucket := range rl.buckets {
		bucket.mu.Lock()
		// Remove buckets that haven't been accessed in 30 minutes
		if now.Sub(bucket.lastRefillTime) > 30*time.Minute {
			delete(rl.buckets, key)
		}
		bucket.mu.Unlock()
	}
}

// Helper functions

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return def
}

func rateLimitDisabled() bool {
	// RATE_LIMIT_ENABLED=false disables limiter
	val := strings.ToLower(strings.TrimSpace(os.Getenv("RATE_LIMIT_ENABLED")))
	return val == "false" || val == "0" || val == "no"
}

// RateLimitMiddleware applies general rate limiting
func RateLimitMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rateLimitDisabled() {
			return c.Next()
		}
		// Skip health checks to reduce dev friction
		path := c.Path()
		if path == "/health" || path == "/api/health" {
			return c.Next()
		}

		clientIP := c.IP()
		if !generalLimiter.Allow(clientIP) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Rate limit exceeded. Please try again later.",
			})
		}
		return c.Next()
	}
}

// AuthRateLimitMiddleware applies stricter rate limiting to auth endpoints
func AuthRateLimitMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rateLimitDisabled() {
			return c.Next()
		}
		clientIP := c.IP()
		if !authLimiter.Allow(clientIP) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many authentication attempts. Please try again in 5 minutes.",
			})
		}
		return c.Next()
	}
}
