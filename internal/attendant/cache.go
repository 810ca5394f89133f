package attendant

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"bistro-attendant/internal/common/logger"
	"bistro-attendant/internal/common/metrics"
	"bistro-attendant/internal/schedule"
)

// AnswerCache memoizes composed answers. The key carries the weekday so a
// cached "hoje" answer can never leak into the next day.
type AnswerCache struct {
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

func NewAnswerCache(client *redis.Client, ttl time.Duration, log logger.Logger) *AnswerCache {
	return &AnswerCache{client: client, ttl: ttl, log: log}
}

func cacheKey(prompt string, now time.Time) string {
	return fmt.Sprintf("answer:%d:%s", int(now.Weekday()), schedule.Normalize(prompt))
}

// Get returns the cached answer for the prompt, if any. Cache failures are
// logged and treated as misses.
func (c *AnswerCache) Get(ctx context.Context, prompt string, now time.Time) (string, bool) {
	val, err := c.client.Get(ctx, cacheKey(prompt, now)).Result()
	if err == redis.Nil {
		metrics.AnswerCacheTotal.WithLabelValues("miss").Inc()
		return "", false
	}
	if err != nil {
		c.log.WithError(err).Warn("answer cache read failed", nil)
		metrics.AnswerCacheTotal.WithLabelValues("error").Inc()
		return "", false
	}
	metrics.AnswerCacheTotal.WithLabelValues("hit").Inc()
	return val, true
}

// Set stores the answer. Failures are logged, never propagated.
func (c *AnswerCache) Set(ctx context.Context, prompt string, now time.Time, answer string) {
	if err := c.client.Set(ctx, cacheKey(prompt, now), answer, c.ttl).Err(); err != nil {
		c.log.WithError(err).Warn("answer cache write failed", nil)
	}
}
