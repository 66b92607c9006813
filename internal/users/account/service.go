// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/critica/internal/platform/apperr"
	"github.com/taibuivan/critica/internal/platform/sec"
	"github.com/taibuivan/critica/internal/users/auth"
	"github.com/taibuivan/critica/pkg/pagination"
	"github.com/taibuivan/critica/pkg/uuid"
)

// # Service Layer

// Service orchestrates business logic for the user directory.
//
// It enforces identity uniqueness and keeps role assignment an
// administrator-only concern.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Directory Management

/*
ListUsers returns a page of the user directory.

Parameters:
  - context: context.Context
  - search: string (Optional case-insensitive username substring filter)
  - page: pagination.Params

Returns:
  - []auth.User: The matching page of users
  - int: Total number of matches across all pages
  - error: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context, search string, page pagination.Params) ([]auth.User, int, error) {
	users, total, err := service.accountRepository.List(context, search, page)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return users, total, nil
}

// CreateUserInput holds the data an administrator provides to provision a user.
type CreateUserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      sec.UserRole
}

/*
CreateUser provisions a new user on behalf of an administrator.

Description: Unlike signup, this path sets profile fields and role directly and
issues no confirmation code. The created user authenticates later through the
normal signup flow, which is idempotent for the exact identity pair.

Parameters:
  - context: context.Context
  - input: CreateUserInput

Returns:
  - *auth.User: The created user
  - error: Conflict (identity already taken) or storage errors
*/
func (service *Service) CreateUser(context context.Context, input CreateUserInput) (*auth.User, error) {
	if _, err := service.accountRepository.FindByUsername(context, input.Username); err == nil {
		return nil, apperr.Conflict("Username is already taken", apperr.FieldError{
			Field:   auth.FieldUsername,
			Message: "A user with this username already exists",
		})
	} else if !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("account_service_create_lookup_failed: %w", err)
	}

	if _, err := service.accountRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already taken", apperr.FieldError{
			Field:   auth.FieldEmail,
			Message: "A user with this email already exists",
		})
	} else if !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("account_service_create_lookup_failed: %w", err)
	}

	role := input.Role
	if role == "" {
		role = sec.RoleUser
	}

	user := &auth.User{
		ID:        uuid.New(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
	}

	if err := service.accountRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_provisioned",
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

/*
GetUser retrieves a single user by username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *auth.User: The hydrated user
  - error: Not found or execution failures
*/
func (service *Service) GetUser(context context.Context, username string) (*auth.User, error) {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserInput defines the mutable fields of a directory entry. Nil fields
// are left unchanged.
type UpdateUserInput struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *sec.UserRole
}

/*
UpdateUser applies a partial set of changes to a directory entry.

Description: Fetches the existing user state, overlays provided fields, and
synchronizes the change to persistent storage. Role changes take effect on the
user's next token exchange; already-issued tokens keep their original claims
until they expire.

Parameters:
  - context: context.Context
  - username: string (Current username of the target)
  - input: UpdateUserInput

Returns:
  - *auth.User: The updated user
  - error: Not found, conflict, or storage failures
*/
func (service *Service) UpdateUser(context context.Context, username string, input UpdateUserInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Role != nil {
		user.Role = *input.Role
	}

	// Persist changes
	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_directory_updated", slog.String("user_id", user.ID))

	return user, nil
}

/*
DeleteUser permanently removes a user by username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: Not found or execution failures
*/
func (service *Service) DeleteUser(context context.Context, username string) error {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return err
	}

	if err := service.accountRepository.Delete(context, user.ID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	service.logger.Warn("user_account_deleted", slog.String("user_id", user.ID))

	return nil
}

// # Self-Service Profile

/*
GetProfile retrieves the full private identity of the calling user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput defines the subset of fields a member may change on
// their own account. Role is deliberately absent.
type UpdateProfileInput struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
}

/*
UpdateProfile applies a partial set of changes to the calling user's own account.

Description: A member editing themselves goes through this narrower input type,
so a role field smuggled into the request body is silently discarded rather
than rejected.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Not found, conflict, or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}

	// Persist changes
	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}
