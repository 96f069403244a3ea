package redis

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// MustNewClient connects to the Redis instance holding admin sessions.
func MustNewClient() *redis.Client {
	addr := viper.GetString("redis.addr")
	if addr == "" {
		addr = "redis:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       viper.GetInt("redis.db"),
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		panic(err)
	}

	slog.Info("Redis connected", "addr", addr)

	return client
}
