package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Pjt727/roster/server/view"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "roster:session:"

type RedisStore struct {
	client         *redis.Client
	duration       time.Duration
	activeDuration time.Duration
}

func NewRedisStore(ctx context.Context, address, password string, duration, activeDuration time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not reach redis at %s: %w", address, err)
	}
	return &RedisStore{
		client:         client,
		duration:       duration,
		activeDuration: activeDuration,
	}, nil
}

func (s *RedisStore) Create(ctx context.Context, user view.User) (string, error) {
	b, err := json.Marshal(user)
	if err != nil {
		return "", err
	}
	token := uuid.New().String()
	if err := s.client.Set(ctx, redisKeyPrefix+token, b, s.duration).Err(); err != nil {
		return "", fmt.Errorf("could not save session: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (view.User, bool, error) {
	key := redisKeyPrefix + token
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return view.User{}, false, nil
	} else if err != nil {
		return view.User{}, false, fmt.Errorf("could not read session: %w", err)
	}
	var user view.User
	if err := json.Unmarshal(b, &user); err != nil {
		return view.User{}, false, fmt.Errorf("could not decode session: %w", err)
	}

	ttl, err := s.client.TTL(ctx, key).Result()
	if err == nil && ttl > 0 && ttl < s.activeDuration {
		if err := s.client.Expire(ctx, key, ttl+s.activeDuration).Err(); err != nil {
			return user, true, fmt.Errorf("could not extend session: %w", err)
		}
	}
	return user, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, redisKeyPrefix+token).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
