package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/emberwake/merch-cart/internal/api/middleware"
	"github.com/emberwake/merch-cart/internal/config"
	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {

	redisURL := cfg.RedisConnect.GetDSN()
	slog.Info("Connecting to Redis", slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.RedisConnect.Username, cfg.RedisConnect.Host, cfg.RedisConnect.Port)))

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Error("Failed to parse Redis URL", slog.Any("error", err))
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")
	return client, nil
}

type RateLimitRepository interface {
	Allow(ctx context.Context, session string) (allowed bool, remaining int, retryAfter int, err error)
}

type rateLimitRepository struct {
	client redis.Cmdable
	cfg    config.RateConfig
	now    func() time.Time
}

func NewRateLimitRepo(client redis.Cmdable, cfg config.RateConfig) RateLimitRepository {
	return &rateLimitRepository{client: client, cfg: cfg, now: time.Now}
}

// Allow records one cart mutation for the session in a sliding window and
// reports whether it fits. retryAfter is in seconds.
func (r *rateLimitRepository) Allow(ctx context.Context, session string) (bool, int, int, error) {

	logger := middleware.LoggerFromContext(ctx)

	key := "cart_mutations:" + session
	window := int64(r.cfg.WindowSize.Seconds())

	now := r.now()
	windowStart := now.Unix() - window

	pipe := r.client.Pipeline()

	// drop attempts that left the window
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))

	// members are unique per request, scores are whole seconds
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.Unix()), Member: strconv.FormatInt(now.UnixNano(), 10)})

	count := pipe.ZCard(ctx, key)

	pipe.Expire(ctx, key, r.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Redis pipeline execution failed for rate limit", slog.String("key", key), slog.Any("error", err))
		return false, 0, 0, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()

	if attempts > r.cfg.MaxAttempts {

		scores, err := r.client.ZRangeArgsWithScores(ctx, redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).Result()
		if err == nil && len(scores) == 0 {
			err = errors.New("rate limit window is empty")
		}
		if err != nil {
			logger.Error("Failed to get oldest attempt time for rate limit", slog.String("key", key), slog.Any("error", err))
			return false, 0, int(window), fmt.Errorf("failed to get oldest attempt time: %w", err)
		}

		retryAfter := max(int64(scores[0].Score)+window-now.Unix(), 0)

		logger.Warn("Rate limit exceeded for cart session", slog.String("session", session), slog.Int64("attempts", attempts))
		return false, 0, int(retryAfter), nil
	}

	remaining := r.cfg.MaxAttempts - attempts

	logger.Debug("Rate limit check passed", slog.String("session", session), slog.Int64("attempts", attempts), slog.Int64("remaining", remaining))
	return true, int(remaining), 0, nil
}
