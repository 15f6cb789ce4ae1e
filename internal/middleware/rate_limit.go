package middleware

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/metrics"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// RateLimiter counts requests per user in fixed windows stored in Redis
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
	}
}

// NewRecipeCreationRateLimiter limits recipe creation per author
func NewRecipeCreationRateLimiter(redisClient *redis.Client, limit int, window time.Duration) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    window,
		Limit:     limit,
		KeyPrefix: "rate_limit:recipe_creation",
	})
}

// Middleware enforces the limit for the authenticated caller. It must run
// after RequireAuth. A nil limiter or a Redis failure lets the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.redis == nil {
			c.Next()
			return
		}
		userID, ok := UserID(c)
		if !ok {
			Abort(c, apperr.Unauthenticated("authentication credentials were not provided"))
			return
		}

		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), userID.String())
		if err != nil {
			logging.Ctx(c.Request.Context()).Warn().Err(err).Msg("rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			metrics.RecordRateLimitHit(c.FullPath())
			c.Header("Retry-After", strconv.Itoa(int(time.Until(resetTime).Seconds())+1))
			Abort(c, apperr.RateLimited(fmt.Sprintf("limit of %d requests per %v exceeded", rl.config.Limit, rl.config.Window)))
			return
		}

		c.Next()
	}
}

// IsAllowed counts a request for key in the current window.
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	windowStart := time.Now().Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= rl.config.Limit, remaining, windowStart.Add(rl.config.Window), nil
}

// Remaining reports how many requests key has left in the current window
// without counting one.
func (rl *RateLimiter) Remaining(ctx context.Context, key string) (int, time.Time, error) {
	windowStart := time.Now().Truncate(rl.config.Window)
	resetTime := windowStart.Add(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	count, err := rl.redis.Get(ctx, redisKey).Int()
	if errors.Is(err, redis.Nil) {
		return rl.config.Limit, resetTime, nil
	}
	if err != nil {
		return 0, time.Time{}, err
	}

	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, resetTime, nil
}

// Config returns the limiter settings
func (rl *RateLimiter) Config() RateLimitConfig {
	return rl.config
}
