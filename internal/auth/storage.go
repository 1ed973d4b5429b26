// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sync"

	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
)

// sessionKeys are written together on login and removed together on logout.
var sessionKeys = []string{
	constants.StorageKeyAuthenticated,
	constants.StorageKeyUserID,
	constants.StorageKeyUsername,
}

// Storage is the durable key-value storage of one browser session.
type Storage interface {
	// Get returns the value of key, or "" when it is absent.
	Get(context context.Context, key string) (string, error)

	// Set writes every pair in one step.
	Set(context context.Context, values map[string]string) error

	// Remove deletes the keys. Absent keys are ignored.
	Remove(context context.Context, keys ...string) error
}

// Storages hands out the [Storage] of a browser session.
type Storages interface {
	For(sessionID string) Storage
}

// # In-Memory Storage

// MemoryStorages keeps every browser session in process. Values survive
// workspace eviction but not a restart.
type MemoryStorages struct {
	mu       sync.Mutex
	sessions map[string]map[string]string
}

// NewMemoryStorages creates an empty [MemoryStorages].
func NewMemoryStorages() *MemoryStorages {
	return &MemoryStorages{sessions: map[string]map[string]string{}}
}

// For implements [Storages].
func (storages *MemoryStorages) For(sessionID string) Storage {
	return &MemoryStorage{storages: storages, sessionID: sessionID}
}

// MemoryStorage is the view of one session inside [MemoryStorages].
type MemoryStorage struct {
	storages  *MemoryStorages
	sessionID string
}

func (storage *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	storage.storages.mu.Lock()
	defer storage.storages.mu.Unlock()
	return storage.storages.sessions[storage.sessionID][key], nil
}

func (storage *MemoryStorage) Set(_ context.Context, values map[string]string) error {
	storage.storages.mu.Lock()
	defer storage.storages.mu.Unlock()

	session, ok := storage.storages.sessions[storage.sessionID]
	if !ok {
		session = map[string]string{}
		storage.storages.sessions[storage.sessionID] = session
	}
	for key, value := range values {
		session[key] = value
	}
	return nil
}

func (storage *MemoryStorage) Remove(_ context.Context, keys ...string) error {
	storage.storages.mu.Lock()
	defer storage.storages.mu.Unlock()

	session := storage.storages.sessions[storage.sessionID]
	for _, key := range keys {
		delete(session, key)
	}
	if len(session) == 0 {
		delete(storage.storages.sessions, storage.sessionID)
	}
	return nil
}
