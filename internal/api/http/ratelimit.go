package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/provider-directory/pkg/util"
)

// ApplyRateLimiter bounds public application submissions per client IP
// using a fixed Redis INCR/EXPIRE window. The limiter fails open: when
// Redis is unreachable the submission still goes through.
func ApplyRateLimiter(client *redis.Client, logger *zap.Logger, maxRequests int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := "ratelimit:apply:" + c.IP()

		count, err := client.Incr(c.UserContext(), key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			client.Expire(c.UserContext(), key, window)
		}
		if count > int64(maxRequests) {
			return apperrors.NewTooManyRequests("Çok fazla başvuru; lütfen daha sonra tekrar deneyin")
		}
		return c.Next()
	}
}
