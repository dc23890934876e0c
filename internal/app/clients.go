package app

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/repotutor/repotutor-backend/internal/logger"
)

// newRedisClient returns nil when no address is configured or the
// server is unreachable. Callers treat a nil client as "no cache".
func newRedisClient(addr string, log *logger.Logger) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, model catalog caching disabled", "addr", addr, "error", err)
		client.Close()
		return nil
	}
	log.Info("Redis connected", "addr", addr)
	return client
}
