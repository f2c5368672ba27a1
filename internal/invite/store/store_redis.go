package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const tokenSetKey = "gatekeeper:tokens"

// RedisStore keeps tokens in one Redis set so several bot processes share
// redemption state. SREM reports removal atomically on the server.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) AddMissing(ctx context.Context, tokens []string) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	cmds := make([]*redis.IntCmd, len(tokens))
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, t := range tokens {
			cmds[i] = pipe.SAdd(ctx, tokenSetKey, t)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add tokens: %w", err)
	}

	var added []string
	for i, cmd := range cmds {
		if cmd.Val() == 1 {
			added = append(added, tokens[i])
		}
	}
	return added, nil
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	members, err := s.client.SMembers(ctx, tokenSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}
	return members, nil
}

func (s *RedisStore) Remove(ctx context.Context, token string) (bool, error) {
	n, err := s.client.SRem(ctx, tokenSetKey, token).Result()
	if err != nil {
		return false, fmt.Errorf("redeem token: %w", err)
	}
	return n == 1, nil
}
