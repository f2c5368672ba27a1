package requestwindow

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"gatekeeper/internal/ratelimit/models"
)

const keyPrefix = "gatekeeper:reqwin:"

// expiryGrace keeps a key alive slightly past the window so the oldest
// instant is still stored when a request lands exactly on the boundary.
const expiryGrace = time.Second

// RedisStore keeps each window as a Redis list, newest first, trimmed to
// capacity. Keys expire one grace second after ttl so identities that never
// return are dropped.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Append(ctx context.Context, key string, at time.Time, capacity int, ttl time.Duration) (models.RequestWindow, error) {
	redisKey := keyPrefix + models.SanitizeKeySegment(key)

	var rng *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, redisKey, at.UnixNano())
		pipe.LTrim(ctx, redisKey, 0, int64(capacity-1))
		rng = pipe.LRange(ctx, redisKey, 0, -1)
		if ttl > 0 {
			pipe.PExpire(ctx, redisKey, ttl+expiryGrace)
		}
		return nil
	})
	if err != nil {
		return models.RequestWindow{}, fmt.Errorf("append request window: %w", err)
	}

	raw := rng.Val()
	stamps := make([]time.Time, 0, len(raw))
	for _, v := range raw {
		ns, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return models.RequestWindow{}, fmt.Errorf("parse request instant %q: %w", v, err)
		}
		stamps = append(stamps, time.Unix(0, ns))
	}
	slices.Reverse(stamps)

	return models.RequestWindow{Identity: key, Timestamps: stamps, Capacity: capacity}, nil
}
