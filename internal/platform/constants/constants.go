// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire backend.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Catalog: Page size, search caps and poll intervals used by the containers.
  - Sessions: Cookie naming and durable session keys.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "movies-bff"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout covers the slowest operation: three subtitle legs of 10s each.
	DefaultWriteTimeout = 40 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 35 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute

	// GatewayRateLimitRPS throttles outbound calls to each external metadata provider.
	GatewayRateLimitRPS = 5.0

	// GatewayRateLimitBurst is the burst allowed for outbound provider calls.
	GatewayRateLimitBurst = 5
)

// # Catalog

const (
	// PageSize is the number of movies per catalog or favorites page.
	PageSize = 10

	// SearchResultsLimit caps the candidates kept from a metadata search.
	SearchResultsLimit = 10

	// SubtitleLegTimeout bounds each of the three subtitle retrieval calls.
	SubtitleLegTimeout = 10 * time.Second

	// FavoritesPollInterval is the refresh period of the favorites counter.
	FavoritesPollInterval = 30 * time.Second

	// MinReleaseYear is the earliest accepted release year.
	MinReleaseYear = 1888

	// MaxRating is the upper bound of the rating scale.
	MaxRating = 10.0
)

// # Sessions

const (
	// AuthIssuer is the standard 'iss' claim of the session cookie token.
	AuthIssuer = "movies.catalog"

	// SessionCookieName is the browser cookie carrying the signed session token.
	SessionCookieName = "movies_session"

	// SessionTTL is how long a browser session and its durable keys survive.
	SessionTTL = 30 * 24 * time.Hour

	// WorkspaceIdleTTL evicts in-process containers of idle browser sessions.
	WorkspaceIdleTTL = 2 * time.Hour

	// Durable session keys, shared with the browser UI.
	StorageKeyAuthenticated = "isAuthenticated"
	StorageKeyUserID        = "userId"
	StorageKeyUsername      = "username"
)

// # HTTP Headers

const (
	HeaderXRequestID     = "X-Request-ID"
	HeaderOrigin         = "Origin"
	HeaderXRealIP        = "X-Real-IP"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderAcceptLanguage = "Accept-Language"
)

// # JSON Field Identifiers

const (
	FieldError   = "error"
	FieldCode    = "code"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixSession = "session:"
)
