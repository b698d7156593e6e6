package token

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"voteroom/internal/constants"
)

// RedisBackend stores the token under a single string key. Meant for
// headless deployments where several processes share one signed-in
// identity and the file backend would not be visible to all of them.
type RedisBackend struct {
	client *redis.Client
	key    string
	ctx    context.Context
	cancel func()
}

func NewRedisBackend(host, port, username, password, prefix string) (*RedisBackend, error) {
	opts := &redis.Options{
		Addr:     host + ":" + port,
		Username: username,
		Password: password,
		DB:       0,
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithCancel(context.Background())

	backend := &RedisBackend{
		client: client,
		key:    prefix + constants.RedisTokenKey,
		ctx:    ctx,
		cancel: cancel,
	}

	if err := backend.client.Ping(ctx).Err(); err != nil {
		cancel()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return backend, nil
}

func (b *RedisBackend) Load() (string, error) {
	tok, err := b.client.Get(b.ctx, b.key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get token from redis: %w", err)
	}
	return tok, nil
}

func (b *RedisBackend) Save(tok string) error {
	// No TTL: token lifetime is discovered reactively through 401s, the
	// client tracks no expiry metadata.
	if err := b.client.Set(b.ctx, b.key, tok, 0).Err(); err != nil {
		return fmt.Errorf("failed to save token to redis: %w", err)
	}
	return nil
}

func (b *RedisBackend) Delete() error {
	if err := b.client.Del(b.ctx, b.key).Err(); err != nil {
		return fmt.Errorf("failed to delete token from redis: %w", err)
	}
	return nil
}

func (b *RedisBackend) Close() error {
	b.cancel()
	return b.client.Close()
}
