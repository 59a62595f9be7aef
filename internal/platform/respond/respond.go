// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package respond writes the JSON envelopes of the Folio API.

Every body has a top-level "ok" flag. Success payloads sit next to it
({"ok": true, "entry": {...}}). Failures carry "error" and "code", plus
"details" for validation problems.
*/
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/pkg/pagination"
)

// Envelope is a success body. The "ok" key is added on write.
type Envelope map[string]any

// ErrorEnvelope is the body of every failed request. OK is always false.
type ErrorEnvelope struct {
	OK      bool                `json:"ok"`
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON encodes payload with status. Encoding errors are dropped since the
// header is already sent.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes body with status 200.
func OK(writer http.ResponseWriter, body Envelope) {
	JSON(writer, http.StatusOK, withOK(body))
}

// Created writes body with status 201.
func Created(writer http.ResponseWriter, body Envelope) {
	JSON(writer, http.StatusCreated, withOK(body))
}

// Message writes {"ok": true, "message": message}.
func Message(writer http.ResponseWriter, message string) {
	OK(writer, Envelope{constants.FieldMessage: message})
}

// Paginated places items under key with total, page, limit and pages beside
// them.
func Paginated(writer http.ResponseWriter, key string, items any, metadata pagination.Meta) {
	OK(writer, Envelope{
		key:     items,
		"total": metadata.Total,
		"page":  metadata.Page,
		"limit": metadata.Limit,
		"pages": metadata.Pages,
	})
}

// Error writes err as an error envelope. Errors that are not an
// [*apperr.AppError] become a generic 500 so internals never reach clients.
// Every 5xx is logged with its cause.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "request_failed",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}

func withOK(body Envelope) Envelope {
	if body == nil {
		body = Envelope{}
	}
	body[constants.FieldOK] = true
	return body
}
