// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
	"github.com/AliceG32/project-frontend-movies/internal/platform/ctxutil"
	"github.com/AliceG32/project-frontend-movies/internal/platform/middleware"
	"github.com/AliceG32/project-frontend-movies/internal/platform/sec"
)

/*
TestSession_IssuesAndReusesCookie verifies a session survives across requests.
*/
func TestSession_IssuesAndReusesCookie(t *testing.T) {
	tokens, err := sec.NewTokenService("a-long-enough-secret", constants.AuthIssuer)
	require.NoError(t, err)

	var seen []string
	handler := middleware.Session(tokens, false)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = append(seen, ctxutil.GetSession(request.Context()).SessionID)
	}))

	// 1. First request mints a cookie
	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := first.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.SessionCookieName, cookies[0].Name)

	// 2. Second request presents it back
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(cookies[0])
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, request)

	require.Len(t, seen, 2)
	assert.Equal(t, seen[0], seen[1])
	assert.Empty(t, second.Result().Cookies())
}

/*
TestSession_ReplacesInvalidCookie verifies a tampered cookie yields a new session.
*/
func TestSession_ReplacesInvalidCookie(t *testing.T) {
	tokens, err := sec.NewTokenService("a-long-enough-secret", constants.AuthIssuer)
	require.NoError(t, err)

	handler := middleware.Session(tokens, false)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "garbage"})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Len(t, recorder.Result().Cookies(), 1)
}

/*
TestLanguage resolves the query parameter before the header.
*/
func TestLanguage(t *testing.T) {
	tests := []struct {
		name   string
		target string
		header string
		want   language.Tag
	}{
		{"query_wins", "/?lang=en", "ru", language.English},
		{"header", "/", "en-GB,en;q=0.9", language.English},
		{"fallback", "/", "", language.Russian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got language.Tag
			handler := middleware.Language(language.Russian)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				got, _ = ctxutil.GetLanguage(request.Context())
			}))

			request := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				request.Header.Set(constants.HeaderAcceptLanguage, tt.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), request)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestRealIP checks the proxy header precedence.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXForwardedFor, "1.2.3.4, 10.0.0.1")
	assert.Equal(t, "1.2.3.4", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXRealIP, "5.6.7.8")
	assert.Equal(t, "5.6.7.8", middleware.RealIP(request))
}

func TestConfirmation(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantAnswer bool
		wantOK     bool
	}{
		{"absent", "/movies/1", false, false},
		{"accepted", "/movies/1?confirm=true", true, true},
		{"declined", "/movies/1?confirm=false", false, true},
		{"malformed", "/movies/1?confirm=maybe", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var answer, ok bool
			handler := middleware.Confirmation()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				answer, ok = ctxutil.GetConfirmation(request.Context())
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, tt.target, nil))
			assert.Equal(t, tt.wantAnswer, answer)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

/*
TestRateLimit exhausts one client's bucket without touching another's.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	}))

	send := func(ip string) int {
		request := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
		request.Header.Set(constants.HeaderXRealIP, ip)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder.Code
	}

	limited := 0
	for range constants.DefaultRateLimitBurst + 10 {
		if send("198.51.100.7") == http.StatusTooManyRequests {
			limited++
		}
	}
	assert.Positive(t, limited)
	assert.Equal(t, http.StatusNoContent, send("203.0.113.9"))
}

/*
TestPanicRecovery answers 500 with the JSON error body.
*/
func TestPanicRecovery(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	handler := middleware.PanicRecovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"code":"INTERNAL_ERROR","error":"An unexpected error occurred"}`, recorder.Body.String())
}
