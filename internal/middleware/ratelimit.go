package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"forumapi/internal/models"
	"forumapi/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TooManyRequestsMessage is the body message of every 429 response.
const TooManyRequestsMessage = "too many requests, please try again later"

// RateLimitConfig configures a per-IP sliding-window limiter.
type RateLimitConfig struct {
	// Name namespaces the Redis keys so separate limiters never share windows.
	Name   string
	Max    int
	Window time.Duration
}

// CheckSlidingWindow records one hit for key and reports whether it fits in the window.
// The window is a sorted set scored by hit time in nanoseconds. Rejected hits are
// removed again so a client that keeps hammering does not extend its own ban.
func CheckSlidingWindow(ctx context.Context, rdb redis.Cmdable, key string, limit int, window time.Duration, now time.Time) (bool, error) {
	if rdb == nil {
		return false, fmt.Errorf("redis client is nil")
	}

	member := strconv.FormatInt(now.UnixNano(), 10) + "-" + uuid.NewString()[:8]
	windowStart := now.Add(-window).UnixNano()

	var card *redis.IntCmd
	_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(windowStart, 10))
		pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member})
		card = pipe.ZCard(ctx, key)
		pipe.PExpire(ctx, key, window)
		return nil
	})
	if err != nil {
		return false, err
	}

	if card.Val() > int64(limit) {
		if remErr := rdb.ZRem(ctx, key, member).Err(); remErr != nil {
			return false, remErr
		}
		return false, nil
	}
	return true, nil
}

// SlidingWindowRateLimit limits requests per client IP as resolved by c.IP(),
// which reads the app's ProxyHeader when one is configured. Redis holds the window when
// it is reachable. Without Redis, or when a Redis call fails, the process-local
// Fiber sliding-window limiter takes over.
func SlidingWindowRateLimit(rdb *redis.Client, cfg RateLimitConfig) fiber.Handler {
	local := limiter.New(limiter.Config{
		Max:               cfg.Max,
		Expiration:        cfg.Window,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return tooManyRequests(c, cfg)
		},
	})

	return func(c *fiber.Ctx) error {
		if rdb == nil {
			return local(c)
		}

		key := fmt.Sprintf("rl:%s:ip:%s", cfg.Name, c.IP())
		allowed, err := CheckSlidingWindow(c.UserContext(), rdb, key, cfg.Max, cfg.Window, time.Now())
		if err != nil {
			Logger.WarnContext(c.UserContext(), "rate limit store unavailable, using local window",
				slog.String("limiter", cfg.Name),
				slog.String("error", err.Error()),
			)
			return local(c)
		}
		if !allowed {
			return tooManyRequests(c, cfg)
		}
		return c.Next()
	}
}

func tooManyRequests(c *fiber.Ctx, cfg RateLimitConfig) error {
	observability.RateLimitRejections.WithLabelValues(cfg.Name).Inc()
	c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(cfg.Window.Seconds())))
	return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
		Status:  models.StatusFail,
		Message: TooManyRequestsMessage,
	})
}
