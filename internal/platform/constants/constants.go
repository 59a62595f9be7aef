// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants collects the fixed values shared by the API layers:
// server deadlines, limiter tuning, token settings, header names and the
// JSON keys written by the respond package.
package constants

import "time"

const (
	AppName    = "folio-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

// Reads and writes allow for media uploads, the slowest requests served.
const (
	DefaultReadTimeout       = 30 * time.Second
	DefaultWriteTimeout      = 30 * time.Second
	DefaultIdleTimeout       = 2 * time.Minute
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout bounds a request end to end. Postgres statements
	// inherit it as statement_timeout.
	GlobalRequestTimeout = 30 * time.Second

	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	DefaultRateLimitRPS   = 50.0
	DefaultRateLimitBurst = 100

	// Limiters idle longer than RateLimitClientTTL are swept every
	// RateLimitCleanupInterval.
	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Authentication

const (
	AuthIssuer = "folio.api"

	// AccessTokenTTL has no refresh flow behind it; editors log in again.
	AccessTokenTTL = 24 * time.Hour

	RedisPrefixRevokedToken = "auth:revoked:"
)

// # Content

// ContentListCap bounds an all=true listing.
const ContentListCap = 1000

// # HTTP

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// Envelope keys.
const (
	FieldOK      = "ok"
	FieldMessage = "message"
	FieldID      = "id"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)
