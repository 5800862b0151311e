package redisdb

import (
	"context"

	"app/internal/config"

	"github.com/redis/go-redis/v9"
)

// Connect はRedisに接続して *redis.Client を返す。
// アドレス未設定や接続失敗のときはnilを返し、レートリミットは無効になる。
func Connect(ctx context.Context, cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
