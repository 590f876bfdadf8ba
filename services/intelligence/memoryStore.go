// File: services/intelligence/memoryStore.go
package ai

import (
	"context"
	"encoding/json"
	"time"

	"belissimo/models"

	"github.com/go-redis/redis/v8"
)

const memoryPrefix = "ai:memory:"

// MemoryStore keeps per-user conversational memory across turns. Entries
// expire after an inactivity window; concurrent turns from the same user are
// last-write-wins.
type MemoryStore interface {
	Get(ctx context.Context, userID string) (*models.MemoryState, error)
	Set(ctx context.Context, userID string, state *models.MemoryState) error
	Clear(ctx context.Context, userID string) error
}

type RedisMemoryStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMemoryStore(client *redis.Client, ttl time.Duration) *RedisMemoryStore {
	return &RedisMemoryStore{client: client, ttl: ttl}
}

func (s *RedisMemoryStore) Get(ctx context.Context, userID string) (*models.MemoryState, error) {
	key := memoryPrefix + userID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return &models.MemoryState{}, nil
	}
	if err != nil {
		return nil, err
	}
	var state models.MemoryState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *RedisMemoryStore) Set(ctx context.Context, userID string, state *models.MemoryState) error {
	key := memoryPrefix + userID
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisMemoryStore) Clear(ctx context.Context, userID string) error {
	key := memoryPrefix + userID
	return s.client.Del(ctx, key).Err()
}
