// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// UserRepository stores admin accounts. The account package shares it.
//
// Lookups report a missing account as apperr.NotFound and Create reports a
// taken email as apperr.Conflict.
type UserRepository interface {
	FindByID(context context.Context, id string) (*User, error)

	// FindByEmail matches case-insensitively.
	FindByEmail(context context.Context, email string) (*User, error)

	// List orders by email.
	List(context context.Context) ([]*User, error)
	Count(context context.Context) (int, error)
	Create(context context.Context, user *User) error

	// Update writes name, email, role, active flag and password hash.
	Update(context context.Context, user *User) error
	TouchLogin(context context.Context, userID string, at time.Time) error
}

// RevocationStore is the logout denylist. Entries expire with the token.
type RevocationStore interface {
	Revoke(context context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(context context.Context, tokenID string) (bool, error)
}
