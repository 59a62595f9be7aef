// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/folio/internal/activity"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider signs and checks access tokens. [sec.TokenService] implements it.
type TokenProvider interface {
	Sign(userID, email, role string, ttl time.Duration) (string, *sec.AuthClaims, error)
	Parse(token string) (*sec.AuthClaims, error)
}

// Recorder receives audit records.
type Recorder interface {
	Record(context context.Context, item activity.Activity)
}

// Service implements login, logout and token verification.
type Service struct {
	users       UserRepository
	revocations RevocationStore
	tokens      TokenProvider
	recorder    Recorder
	logger      *slog.Logger
	now         func() time.Time
}

// NewService constructs a new [Service]. recorder may be nil.
func NewService(users UserRepository, revocations RevocationStore, tokens TokenProvider, recorder Recorder, logger *slog.Logger) *Service {
	return &Service{
		users:       users,
		revocations: revocations,
		tokens:      tokens,
		recorder:    recorder,
		logger:      logger,
		now:         time.Now,
	}
}

// LoginResult is a successfully established session.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

// # Authentication Flow

/*
Login checks credentials and issues an access token.

Description: Unknown emails, wrong passwords and deactivated accounts all
produce the same UNAUTHORIZED message to prevent enumeration.

Returns:
  - *LoginResult: token and user
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, email, password string) (*LoginResult, error) {
	invalid := apperr.Unauthorized("Invalid email or password")

	user, err := service.users.FindByEmail(context, strings.TrimSpace(email))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, invalid
		}
		return nil, err
	}

	if !sec.PasswordMatches(password, user.PasswordHash) || !user.IsActive {
		service.logger.Warn("login_rejected", slog.String("user_id", user.ID), slog.Bool("active", user.IsActive))
		return nil, invalid
	}

	token, claims, err := service.tokens.Sign(user.ID, user.Email, string(user.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_token_generation_failed: %w", err))
	}

	loginAt := service.now()
	if err := service.users.TouchLogin(context, user.ID, loginAt); err != nil {
		service.logger.Warn("login_touch_failed", slog.String("user_id", user.ID), slog.Any("error", err))
	} else {
		user.LastLoginAt = &loginAt
	}

	if service.recorder != nil {
		service.recorder.Record(context, activity.Activity{
			UserID: user.ID, Action: activity.ActionLogin, EntityType: activity.EntityUser, EntityID: user.ID,
		})
	}

	service.logger.Info("login_succeeded", slog.String("user_id", user.ID))
	return &LoginResult{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: user}, nil
}

// Me returns the account behind a verified token.
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperr.Unauthorized("Account is deactivated")
	}
	return user, nil
}

/*
Logout denies the token's jti for the rest of its lifetime. Logging out twice
is harmless.
*/
func (service *Service) Logout(context context.Context, claims *sec.AuthClaims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}

	remaining := time.Duration(0)
	if claims.ExpiresAt != nil {
		remaining = claims.ExpiresAt.Sub(service.now())
	}

	if err := service.revocations.Revoke(context, claims.ID, remaining); err != nil {
		return apperr.Internal(fmt.Errorf("auth_service_logout_failed: %w", err))
	}
	return nil
}

// # Token Verification

// VerifyToken checks the signature and then the denylist. It satisfies
// middleware.TokenVerifier. A denylist outage rejects the token.
func (service *Service) VerifyToken(context context.Context, token string) (*sec.AuthClaims, error) {
	claims, err := service.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	revoked, err := service.revocations.IsRevoked(context, claims.ID)
	if err != nil {
		service.logger.Error("token_revocation_check_failed", slog.Any("error", err))
		return nil, err
	}
	if revoked {
		return nil, apperr.Unauthorized("Token has been revoked")
	}

	return claims, nil
}
