package service

import (
	"SellerLens/internal/pkg/redis"
	"context"
	"sync"
	"time"
)

// PartitionLocker 上传分区互斥锁
//
// 同一 (周期, 类型) 分区的并发替换没有合并语义，直接互斥：
// 持锁期间的第二次上传快速失败，而不是排队或交织写入。
type PartitionLocker interface {
	TryLock(ctx context.Context, key string, token string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string, token string)
}

type redisPartitionLocker struct{}

func NewRedisPartitionLocker() PartitionLocker {
	return &redisPartitionLocker{}
}

func (s *redisPartitionLocker) TryLock(ctx context.Context, key string, token string, ttl time.Duration) (bool, error) {
	return redis.TryLock(ctx, key, token, ttl, 0)
}

func (s *redisPartitionLocker) Unlock(ctx context.Context, key string, token string) {
	redis.UnLock(ctx, key, token)
}

// localPartitionLocker 进程内实现，测试与未配置 Redis 时使用
type localPartitionLocker struct {
	mu   sync.Mutex
	held map[string]string
}

func NewLocalPartitionLocker() PartitionLocker {
	return &localPartitionLocker{
		held: make(map[string]string),
	}
}

func (s *localPartitionLocker) TryLock(ctx context.Context, key string, token string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.held[key]; ok {
		return false, nil
	}
	s.held[key] = token
	return true, nil
}

func (s *localPartitionLocker) Unlock(ctx context.Context, key string, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held[key] == token {
		delete(s.held, key)
	}
}
