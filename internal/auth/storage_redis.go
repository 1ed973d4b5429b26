// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
)

// RedisStorages keeps each browser session in one hash, session:<sid>,
// that expires together with the session cookie.
type RedisStorages struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStorages creates the Redis implementation of [Storages].
func NewRedisStorages(client *redis.Client) *RedisStorages {
	return &RedisStorages{client: client, ttl: constants.SessionTTL}
}

// For implements [Storages].
func (storages *RedisStorages) For(sessionID string) Storage {
	return &RedisStorage{
		client: storages.client,
		key:    constants.RedisPrefixSession + sessionID,
		ttl:    storages.ttl,
	}
}

// RedisStorage is the hash of one browser session.
type RedisStorage struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// Get reads one field. A missing hash or field yields "".
func (storage *RedisStorage) Get(context context.Context, key string) (string, error) {
	value, err := storage.client.HGet(context, storage.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("auth: redis get %s: %w", key, err)
	}
	return value, nil
}

// Set writes the fields and refreshes the expiry in one transaction.
func (storage *RedisStorage) Set(context context.Context, values map[string]string) error {
	fields := make([]any, 0, len(values)*2)
	for key, value := range values {
		fields = append(fields, key, value)
	}

	_, err := storage.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.HSet(context, storage.key, fields...)
		pipe.Expire(context, storage.key, storage.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("auth: redis set: %w", err)
	}
	return nil
}

func (storage *RedisStorage) Remove(context context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := storage.client.HDel(context, storage.key, keys...).Err(); err != nil {
		return fmt.Errorf("auth: redis remove: %w", err)
	}
	return nil
}
