package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	rateLimitPeriod = 1 * time.Minute
	rateLimitCount  = 5 // 1分あたり5回まで
)

// IPごとのレートリミット（auth系エンドポイント用）。
// Redisが使えないときは素通しにする。
func RateLimiter(client *redis.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if client == nil {
				return next(c)
			}

			key := "rate_limit:" + c.RealIP()
			ctx := c.Request().Context()

			count, err := client.Incr(ctx, key).Result()
			if err != nil {
				// Redis障害でログインを止めない
				return next(c)
			}

			// keyを作った最初の1回だけ期限を付ける
			if count == 1 {
				client.Expire(ctx, key, rateLimitPeriod)
			}

			if count > rateLimitCount {
				return c.JSON(http.StatusTooManyRequests, errorJSON("too many requests"))
			}

			return next(c)
		}
	}
}
