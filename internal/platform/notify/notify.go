// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package notify carries transient user notifications (toasts) out of the
state containers.

Containers only depend on the [Sink] interface. The HTTP layer gives every
browser session a [Buffer] and drains it into each response; [LogSink]
mirrors notifications into the structured log.
*/
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// # Types

// Kind is the visual category of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Notification is one transient message shown to the user.
type Notification struct {
	Kind    Kind      `json:"type"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Sink receives notifications emitted by state containers.
type Sink interface {
	Notify(context context.Context, kind Kind, title, message string)
}

// # Buffer

// maxBuffered bounds the backlog of a session nobody drains.
const maxBuffered = 50

// Buffer keeps notifications until the next [Buffer.Drain]. Safe for concurrent use.
type Buffer struct {
	mu    sync.Mutex
	items []Notification
}

// NewBuffer creates an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Notify implements [Sink].
func (buffer *Buffer) Notify(_ context.Context, kind Kind, title, message string) {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()

	buffer.items = append(buffer.items, Notification{Kind: kind, Title: title, Message: message, At: time.Now()})
	if overflow := len(buffer.items) - maxBuffered; overflow > 0 {
		buffer.items = append([]Notification(nil), buffer.items[overflow:]...)
	}
}

// Drain returns the pending notifications in emission order and empties the buffer.
func (buffer *Buffer) Drain() []Notification {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()

	items := buffer.items
	buffer.items = nil
	if items == nil {
		return []Notification{}
	}
	return items
}

// Peek returns a copy of the pending notifications without draining them.
func (buffer *Buffer) Peek() []Notification {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()
	return append([]Notification(nil), buffer.items...)
}

// # Log Sink

// LogSink writes notifications to a structured logger. Errors log at WARN.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Notify implements [Sink].
func (sink *LogSink) Notify(context context.Context, kind Kind, title, message string) {
	level := slog.LevelDebug
	if kind == KindError || kind == KindWarning {
		level = slog.LevelWarn
	}
	sink.logger.Log(context, level, "user_notification",
		slog.String("kind", string(kind)),
		slog.String("title", title),
		slog.String("message", message),
	)
}

// # Fan-out

// Multi fans out every notification to all sinks.
type Multi []Sink

// Notify implements [Sink].
func (multi Multi) Notify(context context.Context, kind Kind, title, message string) {
	for _, sink := range multi {
		sink.Notify(context, kind, title, message)
	}
}

// Discard drops every notification.
var Discard Sink = discard{}

type discard struct{}

func (discard) Notify(context.Context, Kind, string, string) {}
