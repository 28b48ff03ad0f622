package booking

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SeatMapCache holds recently computed seat maps so repeated browsing of the
// same date range does not rescan the ledger for every seat. Entries are an
// advisory view only; the booking path always re-checks under the seat locks.
type SeatMapCache interface {
	// Get returns the cached payload for a key, false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores a payload under a key for the given TTL. Best effort.
	Set(ctx context.Context, key string, val []byte, ttl time.Duration)
}

// RedisSeatMapCache implements SeatMapCache on the shared cache client.
// Cache failures degrade to a recompute, never to an error.
type RedisSeatMapCache struct {
	Client *redis.Client
	Logger *zap.Logger
}

// NewRedisSeatMapCache constructs a RedisSeatMapCache.
func NewRedisSeatMapCache(client *redis.Client, logger *zap.Logger) *RedisSeatMapCache {
	return &RedisSeatMapCache{Client: client, Logger: logger}
}

func (c *RedisSeatMapCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.Logger.Warn("seat map cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return val, true
}

func (c *RedisSeatMapCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) {
	if err := c.Client.Set(ctx, key, val, ttl).Err(); err != nil {
		c.Logger.Warn("seat map cache write failed", zap.String("key", key), zap.Error(err))
	}
}
