// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages admin-surface accounts.

Only administrators reach it. It lists, creates, updates and deactivates
users and bootstraps the first administrator on an empty database.

# Architecture

  - Domain: This package reuses the auth package for the User entity and its repository.
  - Security: Accounts are never hard-deleted; deactivation blocks login.
*/
package account

import (
	"context"

	"github.com/taibuivan/folio/internal/activity"
	"github.com/taibuivan/folio/internal/platform/sec"
)

// # Inputs

// CreateInput is the payload for a new account.
type CreateInput struct {
	Email    string       `json:"email"`
	Name     string       `json:"name"`
	Password string       `json:"password"`
	Role     sec.UserRole `json:"role"`
}

// UpdateInput carries a partial account change. Nil fields are left alone.
type UpdateInput struct {
	Email    *string       `json:"email,omitempty"`
	Name     *string       `json:"name,omitempty"`
	Password *string       `json:"password,omitempty"`
	Role     *sec.UserRole `json:"role,omitempty"`
	Active   *bool         `json:"active,omitempty"`
}

// MinPasswordLength is enforced on create and password change.
const MinPasswordLength = 8

// # Field Identifiers

const (
	FieldID     = "id"
	FieldUsers  = "users"
	FieldActive = "active"
)

// Recorder receives audit records.
type Recorder interface {
	Record(context context.Context, item activity.Activity)
}
