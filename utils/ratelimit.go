// utils/ratelimit.go
package utils

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window per-IP limiter backed by Redis, used on the
// manual test-send endpoint so a stuck client cannot flood the gateway.
func RateLimiter(client *redis.Client, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		key := "ratelimit:" + c.ClientIP()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("Could not increment rate limit key: %v", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		if count == 1 {
			client.Expire(ctx, key, window)
		}

		if count > limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too Many Requests"})
			return
		}

		c.Next()
	}
}
