package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"bistro-attendant/internal/common/config"
	stderrors "bistro-attendant/internal/common/errors"
	"bistro-attendant/internal/common/logger"
)

// NewRedisClient connects and pings a Redis instance.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, log logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, stderrors.NewCacheUnavailableError(err)
	}

	log.Info("connected to redis", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})
	return client, nil
}
