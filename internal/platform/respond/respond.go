// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides the non-HTML response helpers.
//
// # Architecture
//
// Record pages are rendered by package render. Everything else answers here:
// the AJAX endpoints called by the page scripts get small XML documents
// (see [XML]), the health checks get the JSON envelope.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/platform/ctxutil"
)

// SuccessEnvelope is the JSON envelope for successful responses.
type SuccessEnvelope struct {
	Data interface{} `json:"data"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
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

// Error converts any Go error into a standardized JSON error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := apperr.From(err)
	logServerError(request, appError)

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}

// logServerError records 5xx errors with their hidden cause.
func logServerError(request *http.Request, appError *apperr.AppError) {
	if appError.HTTPStatus < http.StatusInternalServerError {
		return
	}
	ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "server_error",
		slog.String("code", appError.Code),
		slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		slog.Any("cause", appError.Cause),
	)
}
