package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "postergen:credential:"

// RedisPersister shares the API key between instances through Redis.
type RedisPersister struct {
	client *redis.Client
	key    string
}

func NewRedisPersister(client *redis.Client) *RedisPersister {
	return &RedisPersister{client: client, key: redisKeyPrefix + SlotName}
}

func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
}

func (p *RedisPersister) Load(ctx context.Context) (string, error) {
	v, err := p.client.Get(ctx, p.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", p.key, err)
	}
	return v, nil
}

func (p *RedisPersister) Save(ctx context.Context, secret string) error {
	if err := p.client.Set(ctx, p.key, secret, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", p.key, err)
	}
	return nil
}
