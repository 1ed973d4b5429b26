// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis connects the Redis instance that holds durable browser sessions.

Each session is one small hash read on every request and written on login, so
the pool stays small and every call fails fast instead of queueing.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
)

const (
	sessionPoolSize = 8
	callTimeout     = time.Second
	pingTimeout     = 2 * time.Second
)

// NewClient parses redisURL, names the connection after the service and
// pings once so a bad URL stops startup.
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	options.ClientName = constants.AppName
	options.PoolSize = sessionPoolSize
	options.MinIdleConns = 1
	options.DialTimeout = 2 * callTimeout
	options.ReadTimeout = callTimeout
	options.WriteTimeout = callTimeout
	options.ContextTimeoutEnabled = true

	client := redis.NewClient(options)
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.InfoContext(context, "redis_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
	)
	return client, nil
}

// Ping backs the sessions readiness check.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingContext, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingContext).Err(); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}
	return nil
}
