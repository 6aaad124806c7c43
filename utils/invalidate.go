package utils

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// InvalidateCachePrefix deletes every cached key under the given prefix.
// Used by write paths (block period, booking) to drop stale availability
// responses for the affected provider.
func InvalidateCachePrefix(ctx context.Context, client *redis.Client, prefix string) {
	logger := GetLogger()
	iter := client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn("failed to delete cache key", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warn("cache invalidation scan failed", zap.String("prefix", prefix), zap.Error(err))
	}
}
