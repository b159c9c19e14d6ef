package rate_limit_service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:client:"

// RedisStore keeps the sliding window in a sorted set per client key,
// scored by the request's unix millisecond timestamp. It lets multiple
// service instances share one limit, key decay is handled by redis
// expiry instead of an in-process sweep.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (r *RedisStore) Prune(ctx context.Context, key string, cutoff time.Time) (int, error) {
	redisKey := redisKeyPrefix + key

	pipe := r.rdb.TxPipeline()
	pipe.ZRemRangeByScore(
		ctx,
		redisKey,
		"-inf",
		strconv.FormatInt(cutoff.UnixMilli(), 10),
	)
	card := pipe.ZCard(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return int(card.Val()), nil
}

func (r *RedisStore) Record(ctx context.Context, key string, at time.Time, ttl time.Duration) error {
	redisKey := redisKeyPrefix + key

	pipe := r.rdb.TxPipeline()
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score: float64(at.UnixMilli()),
		// member only has to be unique within the key
		Member: uuid.NewString(),
	})
	// keep the key around a little past the window so a fresh burst
	// still sees its own history, then let redis reclaim it
	pipe.Expire(ctx, redisKey, ttl*2)
	_, err := pipe.Exec(ctx)
	return err
}
