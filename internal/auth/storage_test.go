// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AliceG32/project-frontend-movies/internal/auth"
	"github.com/AliceG32/project-frontend-movies/internal/platform/redis"
	"github.com/AliceG32/project-frontend-movies/pkg/uuid"
)

// exerciseStorage runs the same contract against any [auth.Storages].
func exerciseStorage(t *testing.T, storages auth.Storages) {
	t.Helper()

	ctx := context.Background()
	sessionID := uuid.New()
	storage := storages.For(sessionID)

	value, err := storage.Get(ctx, "userId")
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, storage.Set(ctx, map[string]string{"userId": "u1", "username": "demo"}))

	value, err = storages.For(sessionID).Get(ctx, "username")
	require.NoError(t, err)
	assert.Equal(t, "demo", value)

	value, err = storages.For(uuid.New()).Get(ctx, "username")
	require.NoError(t, err)
	assert.Empty(t, value, "sessions are isolated")

	require.NoError(t, storage.Remove(ctx, "userId", "username", "missing"))
	value, err = storage.Get(ctx, "userId")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestMemoryStorages(t *testing.T) {
	exerciseStorage(t, auth.NewMemoryStorages())
}

/*
TestRedisStorages runs against a live server. Set REDIS_URL to enable it.
*/
func TestRedisStorages(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set")
	}

	client, err := redis.NewClient(context.Background(), redisURL, discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	exerciseStorage(t, auth.NewRedisStorages(client))
}
