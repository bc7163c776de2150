package middleware

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	redisclient "github.com/joy095/booking/config/redis"
	"github.com/joy095/booking/logger"
)

// ParseCustomRate parses rates like "10-2m", "5-1h", "20-10s".
func ParseCustomRate(rateStr string) (limiter.Rate, error) {
	parts := strings.Split(rateStr, "-")
	if len(parts) != 2 {
		return limiter.Rate{}, fmt.Errorf("invalid rate format: %s", rateStr)
	}

	limit, err := strconv.Atoi(parts[0])
	if err != nil {
		return limiter.Rate{}, fmt.Errorf("invalid limit: %s", parts[0])
	}

	unit := parts[1][len(parts[1])-1:]
	count, err := strconv.Atoi(parts[1][:len(parts[1])-1])
	if err != nil {
		return limiter.Rate{}, fmt.Errorf("invalid period: %s", parts[1])
	}

	var period time.Duration
	switch unit {
	case "s":
		period = time.Duration(count) * time.Second
	case "m":
		period = time.Duration(count) * time.Minute
	case "h":
		period = time.Duration(count) * time.Hour
	default:
		return limiter.Rate{}, fmt.Errorf("unsupported period: %s", parts[1])
	}

	return limiter.Rate{Period: period, Limit: int64(limit)}, nil
}

// newStore builds a redis-backed store when Redis is available and falls
// back to an in-memory store otherwise, so rate limits survive a missing
// coordination layer in degraded form.
func newStore(routeID string, period time.Duration) limiter.Store {
	rdb := redisclient.GetRedisClient()
	if rdb == nil {
		return memorystore.NewStore()
	}

	store, err := redisstore.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix:          fmt.Sprintf("rate_limiter:%s", routeID),
		MaxRetry:        3,
		CleanUpInterval: period,
	})
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to create redis rate limit store for %s: %v", routeID, err)
		return memorystore.NewStore()
	}
	return store
}

// keyGetter rate-limits per authenticated user, per client IP otherwise.
func keyGetter(c *gin.Context) string {
	if userID, exists := c.Get("user_id"); exists {
		if s, ok := userID.(string); ok {
			return s
		}
	}
	return c.ClientIP()
}

// NewRateLimiter creates middleware for a single rate like "10-2m".
func NewRateLimiter(rateStr, routeID string) gin.HandlerFunc {
	rate, err := ParseCustomRate(rateStr)
	if err != nil {
		logger.ErrorLogger.Errorf("Error parsing rate for route %s: %v", routeID, err)
		return func(c *gin.Context) { c.Next() }
	}

	instance := limiter.New(newStore(routeID, rate.Period), rate)
	return ginmiddleware.NewMiddleware(instance, ginmiddleware.WithKeyGetter(keyGetter))
}

// CombinedRateLimiter stacks several rates on one route, e.g. a tight
// per-minute limit plus a looser ten-minute one.
func CombinedRateLimiter(routeID string, rateStrings ...string) gin.HandlerFunc {
	middlewares := make([]gin.HandlerFunc, len(rateStrings))
	for i, rateStr := range rateStrings {
		middlewares[i] = NewRateLimiter(rateStr, fmt.Sprintf("%s_%d", routeID, i))
	}

	return func(c *gin.Context) {
		for _, mw := range middlewares {
			mw(c)
			if c.IsAborted() {
				return
			}
		}
		c.Next()
	}
}
