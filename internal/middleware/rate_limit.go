package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"kreatiq/pkg/log"
	"kreatiq/pkg/metrics"
)

const rateLimitWindow = time.Minute

var incrWithTTLScript = redis.NewScript(`
local c = redis.call("INCR", KEYS[1])
if c == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return c
`)

// RateLimiter 是基于 Redis 的固定窗口计数器，窗口为一分钟。
type RateLimiter struct {
	redis *redis.Client
	limit int64
	now   func() time.Time
}

// NewRateLimiter 创建限流器，limit 为每个客户端每分钟允许的请求数。
func NewRateLimiter(rdb *redis.Client, limit int64) *RateLimiter {
	return &RateLimiter{redis: rdb, limit: limit, now: time.Now}
}

// Allow 为 client 计数一次，返回是否放行、窗口内已用次数和窗口结束时间。
func (r *RateLimiter) Allow(ctx context.Context, client string, now time.Time) (allowed bool, used int64, resetAt time.Time, err error) {
	windowStart := now.UTC().Truncate(rateLimitWindow)
	windowEnd := windowStart.Add(rateLimitWindow)
	ttl := int64(windowEnd.Sub(now.UTC()).Seconds())
	if ttl < 1 {
		ttl = 1
	}

	key := fmt.Sprintf("kreatiq:ratelimit:%s:%s", client, windowStart.Format("200601021504"))
	res, err := incrWithTTLScript.Run(ctx, r.redis, []string{key}, ttl).Int64()
	if err != nil {
		return false, 0, time.Time{}, fmt.Errorf("rate limit script: %w", err)
	}
	return res <= r.limit, res, windowEnd, nil
}

// RateLimit 按客户端 IP 限流，limiter 为 nil 时不做限制。
// Redis 出错时放行请求，只记录警告。
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		now := limiter.now()
		allowed, used, resetAt, err := limiter.Allow(c.Request.Context(), c.ClientIP(), now)
		if err != nil {
			log.Warnw("限流检查失败，放行请求", "clientIP", c.ClientIP(), "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(limiter.limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(limiter.limit-used, 0), 10))
		if !allowed {
			metrics.Global().RateLimited.Inc()
			retryAfter := int64(resetAt.Sub(now).Seconds()) + 1
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests, please try again later"})
			return
		}
		c.Next()
	}
}
