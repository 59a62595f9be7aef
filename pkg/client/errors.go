// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches any [*RequestError] with a 404 status through errors.Is.
var ErrNotFound = errors.New("client: not found")

// FieldDetail is one per-field validation message from the server.
type FieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RequestError is a failed API call.
//
// StatusCode is zero when the request never got a response. Message carries
// the server's error text unchanged when there is one.
type RequestError struct {
	StatusCode int
	Code       string
	Message    string
	Details    []FieldDetail
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Is reports a match against [ErrNotFound] for 404 responses.
func (e *RequestError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// AsRequestError unwraps err into a [*RequestError] when possible.
func AsRequestError(err error) (*RequestError, bool) {
	var requestErr *RequestError
	ok := errors.As(err, &requestErr)
	return requestErr, ok
}
