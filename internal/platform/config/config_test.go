// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AliceG32/project-frontend-movies/internal/platform/config"
)

/*
TestLoad_Defaults verifies defaults for a minimal memory-backed environment.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("STORE_BACKEND", config.BackendMemory)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "ru", cfg.DefaultLocale)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "https://api.opensubtitles.com/api/v1", cfg.OpenSubtitlesURL)
}

/*
TestConfig_Validate covers per-backend connection requirements.
*/
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"postgres_with_dsn", config.Config{StoreBackend: config.BackendPostgres, DatabaseURL: "postgres://x"}, false},
		{"postgres_without_dsn", config.Config{StoreBackend: config.BackendPostgres}, true},
		{"postgrest_complete", config.Config{StoreBackend: config.BackendPostgREST, SupabaseURL: "http://x", SupabaseKey: "k"}, false},
		{"postgrest_missing_key", config.Config{StoreBackend: config.BackendPostgREST, SupabaseURL: "http://x"}, true},
		{"memory_in_dev", config.Config{StoreBackend: config.BackendMemory, Environment: "development"}, false},
		{"memory_in_prod", config.Config{StoreBackend: config.BackendMemory, Environment: "production"}, true},
		{"unknown_backend", config.Config{StoreBackend: "sqlite"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_AllowsOrigin(t *testing.T) {
	cfg := config.Config{ExtraOrigins: "https://movies.example, http://localhost:3000"}

	assert.True(t, cfg.AllowsOrigin("http://localhost:3000"))
	assert.False(t, cfg.AllowsOrigin("https://evil.example"))
	assert.False(t, (&config.Config{}).AllowsOrigin(""))
}
