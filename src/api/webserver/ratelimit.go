package webserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// RateLimit throttles requests per client IP with a fixed Redis window.
// Redis trouble fails open: a throttle outage should not take the site down.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), c.ClientIP())

		n, err := rdb.Incr(c, key).Result()
		if err != nil {
			log.WithError(err).Warn("rate limiter unavailable")
			c.Next()
			return
		}
		if n == 1 {
			rdb.Expire(c, key, window)
		}
		if n > int64(limit) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"err": fmt.Sprintf("rate limit exceeded: %d requests per %v", limit, window),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
