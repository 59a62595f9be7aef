// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/folio/internal/activity"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/internal/users/auth"
	"github.com/taibuivan/folio/pkg/uuid"
)

// Service implements account administration.
type Service struct {
	repo     auth.UserRepository
	recorder Recorder
	logger   *slog.Logger
}

// NewService constructs a new [Service]. recorder may be nil.
func NewService(repo auth.UserRepository, recorder Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, recorder: recorder, logger: logger}
}

// # Queries

// List returns every account ordered by email.
func (service *Service) List(context context.Context) ([]*auth.User, error) {
	return service.repo.List(context)
}

// Get returns one account.
func (service *Service) Get(context context.Context, id string) (*auth.User, error) {
	return service.repo.FindByID(context, id)
}

// # Mutations

/*
Create registers a new active account.

Returns:
  - *auth.User: The stored account
  - error: ValidationError for bad input, Conflict for a taken email
*/
func (service *Service) Create(context context.Context, input CreateInput) (*auth.User, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	if input.Role == "" {
		input.Role = sec.RoleEditor
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldEmail, input.Email).Email(auth.FieldEmail, input.Email).
		MinLen(auth.FieldPassword, input.Password, MinPasswordLength).
		Custom(auth.FieldRole, !input.Role.Valid(), "Role must be one of: admin, developer, editor")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("account_service_hash_failed: %w", err))
	}

	user := &auth.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         input.Role,
		IsActive:     true,
	}
	if err := service.repo.Create(context, user); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).Info("account_created", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))
	service.record(context, activity.ActionCreate, user, "Created "+user.Email)
	return user, nil
}

/*
Update applies a partial change.

Description: An administrator may not deactivate or demote their own
account, so at least one admin always remains able to sign in.
*/
func (service *Service) Update(context context.Context, actorID, id string, input UpdateInput) (*auth.User, error) {
	user, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Email != nil {
		user.Email = strings.TrimSpace(*input.Email)
		validator.Required(auth.FieldEmail, user.Email).Email(auth.FieldEmail, user.Email)
	}
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Role != nil {
		validator.Custom(auth.FieldRole, !input.Role.Valid(), "Role must be one of: admin, developer, editor")
		validator.Custom(auth.FieldRole, id == actorID && *input.Role != sec.RoleAdmin, "You cannot change your own role")
		user.Role = *input.Role
	}
	if input.Active != nil {
		validator.Custom(FieldActive, id == actorID && !*input.Active, "You cannot deactivate your own account")
		user.IsActive = *input.Active
	}
	if input.Password != nil {
		validator.MinLen(auth.FieldPassword, *input.Password, MinPasswordLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Password != nil {
		hash, err := sec.HashPassword(*input.Password)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("account_service_hash_failed: %w", err))
		}
		user.PasswordHash = hash
	}

	if err := service.repo.Update(context, user); err != nil {
		return nil, err
	}

	service.record(context, activity.ActionUpdate, user, "Updated "+user.Email)
	return user, nil
}

// Deactivate blocks an account from signing in. Self-deactivation is refused.
func (service *Service) Deactivate(context context.Context, actorID, id string) error {
	if actorID == id {
		return apperr.Forbidden("You cannot deactivate your own account")
	}

	user, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return nil
	}

	user.IsActive = false
	if err := service.repo.Update(context, user); err != nil {
		return err
	}

	ctxutil.GetLogger(context).Info("account_deactivated", slog.String("user_id", id))
	service.record(context, activity.ActionDeactivate, user, "Deactivated "+user.Email)
	return nil
}

// bootstrapPasswordBytes is the entropy of a generated admin password.
const bootstrapPasswordBytes = 18

/*
Bootstrap creates the first administrator when no account exists. Without a
password one is generated and logged once.

Returns:
  - bool: true when an account was created
  - error: Persistence failures
*/
func (service *Service) Bootstrap(context context.Context, email, password string) (bool, error) {
	if email == "" {
		return false, nil
	}

	count, err := service.repo.Count(context)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	generated := password == ""
	if generated {
		if password, err = sec.GenerateSecureToken(bootstrapPasswordBytes); err != nil {
			return false, err
		}
	}

	user, err := service.Create(context, CreateInput{Email: email, Name: "Administrator", Password: password, Role: sec.RoleAdmin})
	if err != nil {
		return false, err
	}

	if generated {
		// Logged once so the operator can sign in and change it.
		service.logger.Warn("admin_bootstrapped_with_generated_password",
			slog.String("user_id", user.ID),
			slog.String("email", user.Email),
			slog.String("password", password),
		)
		return true, nil
	}

	service.logger.Info("admin_bootstrapped", slog.String("user_id", user.ID), slog.String("email", user.Email))
	return true, nil
}

func (service *Service) record(context context.Context, action activity.Action, user *auth.User, summary string) {
	if service.recorder == nil {
		return
	}
	service.recorder.Record(context, activity.Activity{
		Action: action, EntityType: activity.EntityUser, EntityID: user.ID, Summary: summary,
	})
}
