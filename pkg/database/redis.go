package database

import (
	"context"
	"time"

	"soccer-school/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// InitRedis connects to Redis for response caching. A nil client is
// returned when Redis is unreachable so the app degrades to uncached
// responses instead of failing startup.
func InitRedis(config utils.RedisConfig, log *zap.Logger) *redis.Client {
	if config.Addr == "" {
		log.Info("redis address not set, response cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable, response cache disabled", zap.Error(err))
		_ = client.Close()
		return nil
	}

	log.Info("connected to redis", zap.String("addr", config.Addr))
	return client
}
