package redis

import (
	"SellerLens/internal/api/config"
	"context"

	"github.com/redis/go-redis/v9"
)

var Rdb *redis.Client

// InitRedis 初始化 Redis 客户端连接
func InitRedis(cfg config.RedisConfig) error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx := context.Background()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return err
	}

	Rdb = rdb
	return nil
}

// Ready Redis 是否可用，缓存路径在未初始化时直接跳过
func Ready() bool {
	return Rdb != nil
}

// GetRdbClient 暴露原生客户端
func GetRdbClient() *redis.Client {
	return Rdb
}
