// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides the cryptographic primitives of the backend: the
// signed browser-session token and password hashing for the in-process store.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AliceG32/project-frontend-movies/pkg/uuid"
)

// SessionClaims is the payload of the browser session cookie.
//
// It only identifies the browser session. Who is logged in lives in the
// durable session storage, keyed by SessionID.
type SessionClaims struct {
	jwt.RegisteredClaims

	// SessionID is abbreviated to keep the cookie small.
	SessionID string `json:"sid"`
}

// TokenService signs and verifies session tokens with HS256.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService from a shared secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if len(secret) < 8 {
		return nil, errors.New("sec: session secret must be at least 8 bytes")
	}
	return &TokenService{secret: []byte(secret), issuer: issuer}, nil
}

// NewSessionID returns a fresh, time-sortable browser session identifier.
func NewSessionID() string {
	return uuid.New()
}

// IssueSessionToken creates a signed token for the given session id.
func (service *TokenService) IssueSessionToken(sessionID string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		SessionID: sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign session token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature, issuer and expiry of a session token.
func (service *TokenService) VerifyToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithIssuer(service.issuer))

	if err != nil {
		return nil, fmt.Errorf("sec: invalid session token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, fmt.Errorf("sec: invalid session claims")
	}

	return claims, nil
}
