package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"reservo/models"
)

const sessionPrefix = "chat:ctx:"

// RedisStore implements Store on Redis. Entries carry a TTL so idle
// conversations expire instead of accumulating.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, conversationID string) (*models.ChatContext, error) {
	data, err := s.client.Get(ctx, sessionPrefix+conversationID).Result()
	if err == redis.Nil {
		return &models.ChatContext{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var chatCtx models.ChatContext
	if err := json.Unmarshal([]byte(data), &chatCtx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &chatCtx, nil
}

func (s *RedisStore) Set(ctx context.Context, conversationID string, chatCtx *models.ChatContext) error {
	data, err := json.Marshal(chatCtx)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionPrefix+conversationID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, conversationID string) error {
	return s.client.Del(ctx, sessionPrefix+conversationID).Err()
}
