// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements identity for the admin surface.

It defines the User entity shared with the account package, password login,
stateless RS256 access tokens, and logout through a Redis denylist of token
ids.

# Architecture

There is no refresh flow. A token lives for [constants.AccessTokenTTL];
logging out denies its jti until it would have expired anyway.
*/
package auth

import (
	"time"

	"github.com/taibuivan/folio/internal/platform/sec"
)

// # Domain Entities

// User is an admin-surface account.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	IsActive     bool         `json:"active"`
	LastLoginAt  *time.Time   `json:"last_login_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "name"
	FieldRole     = "role"
	FieldToken    = "token"
	FieldUser     = "user"
)
