// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/AliceG32/project-frontend-movies/internal/platform/ctxkey"
	"github.com/AliceG32/project-frontend-movies/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Browser Session

// WithSession returns a new context with the browser session claims attached.
func WithSession(ctx context.Context, claims *sec.SessionClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeySession, claims)
}

// GetSession retrieves the [*sec.SessionClaims] from the [context.Context].
func GetSession(ctx context.Context) *sec.SessionClaims {
	claims, ok := ctx.Value(ctxkey.KeySession).(*sec.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

// # Localization

// WithLanguage returns a new context carrying the notification language.
func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLanguage, tag)
}

// GetLanguage retrieves the notification language. ok is false when none was set.
func GetLanguage(ctx context.Context) (tag language.Tag, ok bool) {
	tag, ok = ctx.Value(ctxkey.KeyLanguage).(language.Tag)
	return tag, ok
}

// # Confirmation

// WithConfirmation records the caller's answer to any confirmation prompt
// raised while handling the current request.
func WithConfirmation(ctx context.Context, accepted bool) context.Context {
	return context.WithValue(ctx, ctxkey.KeyConfirmation, accepted)
}

// GetConfirmation retrieves the recorded answer. ok is false when the caller gave none.
func GetConfirmation(ctx context.Context) (accepted bool, ok bool) {
	accepted, ok = ctx.Value(ctxkey.KeyConfirmation).(bool)
	return accepted, ok
}
