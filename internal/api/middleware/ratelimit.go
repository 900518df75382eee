package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// MaxMutationsPerMinute caps create/update/delete calls per client IP.
	MaxMutationsPerMinute = 60

	rateLimitWindow = time.Minute
)

// RateLimit applies a fixed-window limit per client IP, backed by redis.
// On redis failure the request is allowed through; the limiter is a guard,
// not a gate.
func RateLimit(rdb *redis.Client, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())

		ctx := c.Request.Context()
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Error("failed to check rate limit", zap.String("client_ip", c.ClientIP()), zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, rateLimitWindow)
		}

		if count > MaxMutationsPerMinute {
			log.Warn("rate limit exceeded",
				zap.String("client_ip", c.ClientIP()),
				zap.Int64("count", count),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}

		c.Next()
	}
}
