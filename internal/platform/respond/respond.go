// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// Every response uses one of two envelopes. Successful responses carry the
// container snapshot under "data" plus any notifications raised while the
// operation ran; failures carry the client-safe error and the same
// notifications so the UI can show its toasts either way.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/platform/ctxutil"
	"github.com/AliceG32/project-frontend-movies/internal/platform/notify"
	"github.com/AliceG32/project-frontend-movies/pkg/pagination"
)

// SuccessEnvelope is the JSON envelope for successful responses.
type SuccessEnvelope struct {
	Data          interface{}           `json:"data"`
	Meta          *pagination.Meta      `json:"meta,omitempty"`
	Notifications []notify.Notification `json:"notifications,omitempty"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error         string                `json:"error"`
	Code          string                `json:"code"`
	Details       []apperr.FieldError   `json:"details,omitempty"`
	Notifications []notify.Notification `json:"notifications,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Created writes a 201 Created response with data wrapped in the standard success envelope.
func Created(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

// State writes a 200 OK response with a container snapshot and the
// notifications raised while producing it.
func State(writer http.ResponseWriter, data interface{}, notifications []notify.Notification) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data, Notifications: notifications})
}

// Paginated writes a 200 OK response with a page snapshot and its metadata block.
func Paginated(writer http.ResponseWriter, data interface{}, metadata pagination.Meta, notifications []notify.Notification) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data, Meta: &metadata, Notifications: notifications})
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error, notifications ...notify.Notification) {
	logger := ctxutil.GetLogger(request.Context())

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side or upstream issues.
	if appError.HTTPStatus >= 500 {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:         appError.Message,
		Code:          appError.Code,
		Details:       appError.Details,
		Notifications: notifications,
	})
}
