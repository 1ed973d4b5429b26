// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware provides the cross-cutting HTTP processing chain.

It acts as a series of decorators around the standard http.Handler, injecting
traceability, safety, and security into every request lifecycle.

Standard Stack:

  - Trace: RequestID generation for log correlation.
  - Log: Structured Activity logging (slog).
  - Guard: Rate limiting and CORS validation.
  - Safe: Panic recovery to prevent server crashes.
  - Locale: Notification language negotiation.
  - Confirm: ?confirm answers for destructive operations.
  - Session: Signed browser-session cookie (see session.go).
*/
package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
	"github.com/AliceG32/project-frontend-movies/internal/platform/ctxutil"
	"github.com/AliceG32/project-frontend-movies/internal/platform/i18n"
	requestutil "github.com/AliceG32/project-frontend-movies/internal/platform/request"
	"github.com/AliceG32/project-frontend-movies/pkg/uuid"
)

// # Request Tracing

// RequestID attaches a correlation ID to every request for log tracing.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// A client-supplied id wins so traces join across the proxy.
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New()
			}

			ctx := ctxutil.WithRequestID(request.Context(), requestID)
			writer.Header().Set(constants.HeaderXRequestID, requestID)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Activity Logging

// statusRecorder captures what the access log needs after the handler returns.
// [Session] fills sessionID so log lines can be grouped per browser.
type statusRecorder struct {
	http.ResponseWriter
	status    int
	sessionID string
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// StructuredLogger puts a request-scoped logger into the context and writes
// one http_request_finished line per request. 4xx log at warn, 5xx at error.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			started := time.Now()
			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
			)

			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
			next.ServeHTTP(recorder, request.WithContext(ctx))

			level := slog.LevelInfo
			switch {
			case recorder.status >= http.StatusInternalServerError:
				level = slog.LevelError
			case recorder.status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			attrs := []slog.Attr{
				slog.Int("status", recorder.status),
				slog.Int64("latency_ms", time.Since(started).Milliseconds()),
				slog.String("ip", RealIP(request)),
			}
			if recorder.sessionID != "" {
				attrs = append(attrs, slog.String("session_id", recorder.sessionID))
			}
			requestLogger.LogAttrs(ctx, level, "http_request_finished", attrs...)
		})
	}
}

// # Rate Limiting

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitors holds one token bucket per client IP.
type visitors struct {
	mu     sync.Mutex
	byIP   map[string]*visitor
	rps    rate.Limit
	burst  int
	maxAge time.Duration
}

func (table *visitors) allow(ip string, now time.Time) bool {
	table.mu.Lock()
	defer table.mu.Unlock()

	entry, ok := table.byIP[ip]
	if !ok {
		entry = &visitor{limiter: rate.NewLimiter(table.rps, table.burst)}
		table.byIP[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (table *visitors) forget(now time.Time) {
	table.mu.Lock()
	defer table.mu.Unlock()

	for ip, entry := range table.byIP {
		if now.Sub(entry.lastSeen) > table.maxAge {
			delete(table.byIP, ip)
		}
	}
}

// RateLimit throttles each client IP with its own token bucket. Idle buckets
// are swept until context is cancelled.
func RateLimit(context context.Context) func(http.Handler) http.Handler {
	table := &visitors{
		byIP:   map[string]*visitor{},
		rps:    rate.Limit(constants.DefaultRateLimitRPS),
		burst:  constants.DefaultRateLimitBurst,
		maxAge: constants.RateLimitClientTTL,
	}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				table.forget(now)
			case <-context.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !table.allow(RealIP(request), time.Now()) {
				writeError(writer, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// # Reliability & Safety

// PanicRecovery turns a handler panic into a 500 and logs the stack.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				stack := make([]byte, 4<<10)
				stack = stack[:runtime.Stack(stack, false)]
				ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "panic_recovered",
					slog.Any("panic", recovered),
					slog.String("stack", string(stack)),
				)
				writeError(writer, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

// OriginPolicy is satisfied by *config.Config.
type OriginPolicy interface {
	IsDevelopment() bool
	AllowsOrigin(origin string) bool
}

const (
	corsAllowMethods  = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	corsAllowHeaders  = "Accept, Accept-Language, Content-Type, X-Request-ID"
	corsExposeHeaders = "X-Request-ID"
)

// CORS lets the catalog UI call the API with the session cookie. Any origin is
// echoed in development; elsewhere only configured origins are.
func CORS(policy OriginPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			if policy.IsDevelopment() || policy.AllowsOrigin(origin) {
				header := writer.Header()
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Credentials", "true")
				header.Set("Access-Control-Allow-Methods", corsAllowMethods)
				header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
				header.Set("Access-Control-Expose-Headers", corsExposeHeaders)
				header.Add("Vary", constants.HeaderOrigin)
			}

			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// # Localization

// Language resolves the notification language from ?lang or Accept-Language.
func Language(fallback language.Tag) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			tag, ok := i18n.ParseTag(request.URL.Query().Get("lang"))
			if !ok {
				tag = i18n.Match(request.Header.Get(constants.HeaderAcceptLanguage), fallback)
			}
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithLanguage(request.Context(), tag)))
		})
	}
}

// # Confirmation

// Confirmation records the ?confirm answer of destructive requests. Requests
// without the parameter carry no answer and are treated as declined.
func Confirmation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Query().Has("confirm") {
				request = request.WithContext(ctxutil.WithConfirmation(request.Context(), requestutil.Confirmed(request)))
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// # Middleware Helpers

// RealIP prefers X-Real-IP, then the first X-Forwarded-For hop, then the peer address.
func RealIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}
	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(request.RemoteAddr); err == nil {
		return host
	}
	return request.RemoteAddr
}

// writeError answers before the router runs, so it cannot use package respond.
func writeError(writer http.ResponseWriter, status int, code, message string) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(map[string]string{
		constants.FieldCode:  code,
		constants.FieldError: message,
	})
}
