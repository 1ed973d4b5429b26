// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
	"github.com/AliceG32/project-frontend-movies/internal/platform/ctxutil"
	"github.com/AliceG32/project-frontend-movies/internal/platform/sec"
)

// SessionTokens defines the token operations needed by [Session].
//
// Defined here to decouple the middleware from [sec.TokenService] in tests.
type SessionTokens interface {
	IssueSessionToken(sessionID string, timeToLive time.Duration) (string, error)
	VerifyToken(tokenString string) (*sec.SessionClaims, error)
}

// Session attaches a browser session to every request.
//
// # Flow
//  1. Read the session cookie and verify its signature.
//  2. If absent or invalid, mint a new session id and set a fresh cookie.
//  3. Inject [*sec.SessionClaims] into the request context.
func Session(tokens SessionTokens, secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Existing Session ───────────────────────────────────────────
			var claims *sec.SessionClaims
			if cookie, err := request.Cookie(constants.SessionCookieName); err == nil {
				claims, _ = tokens.VerifyToken(cookie.Value)
			}

			// ── 2. New Session ────────────────────────────────────────────────
			if claims == nil {
				sessionID := sec.NewSessionID()
				token, err := tokens.IssueSessionToken(sessionID, constants.SessionTTL)
				if err != nil {
					ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "session_issue_failed", slog.Any("error", err))
					writeError(writer, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
					return
				}

				http.SetCookie(writer, &http.Cookie{
					Name:     constants.SessionCookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(constants.SessionTTL.Seconds()),
					HttpOnly: true,
					Secure:   secureCookie,
					SameSite: http.SameSiteLaxMode,
				})
				claims = &sec.SessionClaims{SessionID: sessionID}
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			if recorder, ok := writer.(*statusRecorder); ok {
				recorder.sessionID = claims.SessionID
			}
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithSession(request.Context(), claims)))
		})
	}
}
