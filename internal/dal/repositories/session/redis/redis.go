package redisrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "storefront:session:"

// SessionRedisRepository keeps admin session tokens as expiring keys.
type SessionRedisRepository struct {
	client redis.Cmdable
}

func NewSessionRedisRepository(client redis.Cmdable) *SessionRedisRepository {
	return &SessionRedisRepository{client: client}
}

func (r *SessionRedisRepository) key(token string) string {
	return keyPrefix + token
}

func (r *SessionRedisRepository) Save(ctx context.Context, token string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(token), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (r *SessionRedisRepository) Exists(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}

	return n > 0, nil
}

func (r *SessionRedisRepository) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
