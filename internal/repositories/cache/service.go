package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"payflow/internal/models"

	"github.com/redis/go-redis/v9"
)

// CacheService wraps the Redis client with JSON caching and the
// per-user pub/sub channels used for live notification delivery.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// GenerateKey builds a namespaced cache key.
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// User caching
func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}
	return s.Set(ctx, s.GenerateKey("user", "id", user.ID), user)
}

func (s *CacheService) GetUser(ctx context.Context, key string) (*models.User, error) {
	var user models.User
	found, err := s.Get(ctx, key, &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("user not found in cache")
	}
	return &user, nil
}

// UserChannel is the pub/sub channel carrying live notifications for a
// user. Delivery is at-most-once: messages published while nobody is
// subscribed are dropped.
func UserChannel(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

// Publish sends a payload on a user's notification channel.
func (s *CacheService) Publish(ctx context.Context, userID uint, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal publish payload: %w", err)
	}
	return s.client.Publish(ctx, UserChannel(userID), data).Err()
}

// Subscribe opens a subscription on a user's notification channel. The
// caller owns the returned PubSub and must close it.
func (s *CacheService) Subscribe(ctx context.Context, userID uint) *redis.PubSub {
	return s.client.Subscribe(ctx, UserChannel(userID))
}

// FlushAll clears the cache database.
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close releases the underlying Redis connection.
func (s *CacheService) Close() error {
	return s.client.Close()
}
