package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"bumpwatch/pkg/logx"
)

// Redis is the durable Store, for deployments where adapter results should
// survive a process restart. Expiry is native redis TTL.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string, dest any) bool {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger(ctx).Warn("redis get failed, treating as miss",
				logx.Error(err),
				"key", key,
			)
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger(ctx).Warn("cache entry unreadable, evicting",
			logx.Error(err),
			"key", key,
		)
		r.client.Del(ctx, key)
		return false
	}

	return true
}

func (r *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logger(ctx).Warn("cache value not serializable, skipping",
			logx.Error(err),
			"key", key,
		)
		return
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		logger(ctx).Warn("redis set failed",
			logx.Error(err),
			"key", key,
		)
	}
}
