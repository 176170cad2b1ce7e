package redis

import (
	"context"
	"time"
)

// 令牌桶脚本：按上次取令牌的时间差补充令牌，再尝试扣减一枚
var tokenBucketScript = `
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local refill_per_sec = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

local bucket = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(bucket[1])
local ts = tonumber(bucket[2])

if tokens == nil then
    tokens = capacity
    ts = now
end

local delta = math.max(0, now - ts)
tokens = math.min(capacity, tokens + delta * refill_per_sec)

local allowed = 0
if tokens >= 1 then
    tokens = tokens - 1
    allowed = 1
end

redis.call('HMSET', key, 'tokens', tokens, 'ts', now)
redis.call('EXPIRE', key, 3600)
return allowed
`

// AllowTokenBucket 从令牌桶取一枚令牌，桶空返回 false
//
// Redis 未就绪时直接放行，限流是保护性功能而非正确性前提。
func AllowTokenBucket(ctx context.Context, key string, capacity int, refillPerMin int) (bool, error) {
	if !Ready() {
		return true, nil
	}
	if capacity <= 0 {
		capacity = 10
	}
	if refillPerMin <= 0 {
		refillPerMin = 5
	}

	refillPerSec := float64(refillPerMin) / 60.0
	result, err := Rdb.Eval(ctx, tokenBucketScript, []string{key},
		capacity, refillPerSec, time.Now().Unix()).Int64()
	if err != nil {
		return false, err
	}
	return result == 1, nil
}
