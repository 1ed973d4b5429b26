// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorites

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
	"github.com/AliceG32/project-frontend-movies/internal/store"
)

// # Count Poller

// CountPoller keeps the favorites count of one user fresh by polling on a fixed interval.
type CountPoller struct {
	favorites store.FavoriteRepository
	logger    *slog.Logger
	interval  time.Duration

	mu     sync.Mutex
	count  int
	known  bool
	cancel context.CancelFunc
	done   chan struct{}
}

// NewCountPoller creates a stopped poller. A non-positive interval uses [constants.FavoritesPollInterval].
func NewCountPoller(favorites store.FavoriteRepository, logger *slog.Logger, interval time.Duration) *CountPoller {
	if interval <= 0 {
		interval = constants.FavoritesPollInterval
	}
	return &CountPoller{favorites: favorites, logger: logger, interval: interval}
}

/*
Start polls immediately and then on every tick until [CountPoller.Stop] is
called or parent is cancelled. Starting a running poller restarts it for userID.
*/
func (poller *CountPoller) Start(parent context.Context, userID string) {
	poller.Stop()

	pollContext, cancel := context.WithCancel(parent)
	done := make(chan struct{})

	poller.mu.Lock()
	poller.cancel = cancel
	poller.done = done
	poller.count = 0
	poller.known = false
	poller.mu.Unlock()

	go func() {
		defer close(done)

		ticker := time.NewTicker(poller.interval)
		defer ticker.Stop()

		poller.Refresh(pollContext, userID)
		for {
			select {
			case <-ticker.C:
				poller.Refresh(pollContext, userID)
			case <-pollContext.Done():
				return
			}
		}
	}()
}

// Stop cancels the polling goroutine and waits for it to exit. Safe to call when stopped.
func (poller *CountPoller) Stop() {
	poller.mu.Lock()
	cancel, done := poller.cancel, poller.done
	poller.cancel, poller.done = nil, nil
	poller.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Refresh polls once. A failed poll keeps the previous count.
func (poller *CountPoller) Refresh(context context.Context, userID string) {
	count, err := poller.favorites.CountByUser(context, userID)
	if err != nil {
		if context.Err() == nil {
			poller.logger.WarnContext(context, "favorites_count_poll_failed",
				slog.String("user_id", userID),
				slog.Any("error", err),
			)
		}
		return
	}

	poller.mu.Lock()
	poller.count = count
	poller.known = true
	poller.mu.Unlock()
}

// Count returns the latest polled count. ok is false until a poll has succeeded.
func (poller *CountPoller) Count() (count int, ok bool) {
	poller.mu.Lock()
	defer poller.mu.Unlock()
	return poller.count, poller.known
}
