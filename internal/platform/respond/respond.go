// Copyright (c) 2026 Travelpack. All rights reserved.

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// Success bodies are written as-is (the mobile and web clients read
// `token`, `message` and trip arrays at the top level). Errors always use
// the same {error, code, details} envelope.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/travelpack/travelpack/internal/platform/apperr"
	"github.com/travelpack/travelpack/internal/platform/constants"
	"github.com/travelpack/travelpack/internal/platform/ctxutil"
)

// ErrorEnvelope is the JSON envelope for error responses.
//
// Details is either a list of [apperr.FieldError] or, for collaborator
// failures, the upstream error text.
type ErrorEnvelope struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with the payload as the body.
func OK(writer http.ResponseWriter, payload any) {
	JSON(writer, http.StatusOK, payload)
}

// Message writes a 200 OK {message, ...extra} body.
func Message(writer http.ResponseWriter, message string, extra map[string]any) {
	body := make(map[string]any, len(extra)+1)
	for key, value := range extra {
		body[key] = value
	}
	body[constants.FieldMessage] = message
	JSON(writer, http.StatusOK, body)
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
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

	envelope := ErrorEnvelope{
		Error: appError.Message,
		Code:  appError.Code,
	}
	switch {
	case appError.Diagnostic != "":
		envelope.Details = appError.Diagnostic
	case len(appError.Details) > 0:
		envelope.Details = appError.Details
	}

	JSON(writer, appError.HTTPStatus, envelope)
}
