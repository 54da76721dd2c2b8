package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// PreviewStore holds pending previews until they are confirmed or expire.
type PreviewStore interface {
	Save(ctx context.Context, preview *RecipePreview) error
	Get(ctx context.Context, id string) (*RecipePreview, error)
	Delete(ctx context.Context, id string) error
}

// RedisPreviewStore keeps previews in Redis with a 24h expiry.
type RedisPreviewStore struct {
	client *redis.Client
}

func NewRedisPreviewStore(client *redis.Client) *RedisPreviewStore {
	return &RedisPreviewStore{client: client}
}

func (s *RedisPreviewStore) Save(ctx context.Context, preview *RecipePreview) error {
	data, err := json.Marshal(preview)
	if err != nil {
		return fmt.Errorf("failed to marshal preview: %w", err)
	}

	if err := s.client.Set(ctx, previewKey(preview.ID), data, previewTTL).Err(); err != nil {
		return fmt.Errorf("failed to save preview to Redis: %w", err)
	}
	return nil
}

func (s *RedisPreviewStore) Get(ctx context.Context, id string) (*RecipePreview, error) {
	data, err := s.client.Get(ctx, previewKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preview from Redis: %w", err)
	}

	var preview RecipePreview
	if err := json.Unmarshal(data, &preview); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preview: %w", err)
	}
	return &preview, nil
}

func (s *RedisPreviewStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, previewKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete preview from Redis: %w", err)
	}
	return nil
}

func previewKey(id string) string {
	return "recipe:preview:" + id
}
