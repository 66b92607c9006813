// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/critica/internal/platform/apperr"
	"github.com/taibuivan/critica/internal/platform/mail"
	"github.com/taibuivan/critica/internal/platform/sec"
	"github.com/taibuivan/critica/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - staff: Whether the account holds the staff elevation flag.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, username, role string, staff bool, timeToLive time.Duration) (string, error)
}

// Service implements the passwordless authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to code issuance or the
// token exchange logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
	mailer         mail.Sender
	logger         *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	tokenProv TokenProvider,
	mailer mail.Sender,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
		mailer:         mailer,
		logger:         logger,
	}
}

// # Signup Flow

// SignupInput holds the data required to request a confirmation code.
type SignupInput struct {
	Username string
	Email    string
}

// SignupResult echoes the identity pair a confirmation code was issued for.
type SignupResult struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

/*
Signup registers a new user or re-issues a confirmation code for an existing one.

Description: The operation is idempotent on the exact (username, email) pair.
A repeat call for a known pair rotates the stored confirmation code rather than
failing, so a user who lost the email can simply sign up again. A call that
matches only one half of an existing identity is a conflict.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *SignupResult: The identity pair the code was issued for
  - error: Conflict (partial identity collision) or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*SignupResult, error) {
	user, err := service.userRepository.FindByUsername(context, input.Username)

	switch {
	case err == nil:
		// Known username. Either the same person signing up again, or a
		// collision with somebody else's account.
		if user.Email != input.Email {
			return nil, apperr.Conflict("Username is already taken", apperr.FieldError{
				Field:   FieldUsername,
				Message: "This username is registered with a different email",
			})
		}

	case apperr.IsNotFound(err):
		// Fresh username. The email must also be unclaimed.
		if _, emailErr := service.userRepository.FindByEmail(context, input.Email); emailErr == nil {
			return nil, apperr.Conflict("Email is already registered", apperr.FieldError{
				Field:   FieldEmail,
				Message: "This email is registered under a different username",
			})
		} else if !apperr.IsNotFound(emailErr) {
			return nil, fmt.Errorf("auth_signup_email_lookup_failed: %w", emailErr)
		}

		user = &User{
			ID:       uuid.New(),
			Username: input.Username,
			Email:    input.Email,
			Role:     sec.RoleUser,
		}
		if createErr := service.userRepository.Create(context, user); createErr != nil {
			return nil, createErr
		}

	default:
		return nil, fmt.Errorf("auth_signup_username_lookup_failed: %w", err)
	}

	if err := service.issueConfirmationCode(context, user); err != nil {
		return nil, err
	}

	return &SignupResult{Username: user.Username, Email: user.Email}, nil
}

/*
issueConfirmationCode rotates the stored code for a user and emails it.

Description: The new code replaces any previously issued one. Mail delivery is
best effort: a failed send is logged but does not fail the signup, since the
user can always request a fresh code by signing up again.
*/
func (service *Service) issueConfirmationCode(context context.Context, user *User) error {
	code, err := GenerateConfirmationCode()
	if err != nil {
		return apperr.Internal(err)
	}

	if err := service.userRepository.SetConfirmationCode(context, user.ID, code); err != nil {
		return err
	}

	sent := service.mailer.Send(context, mail.Message{
		To:      user.Email,
		Subject: confirmationMailSubject,
		Body:    fmt.Sprintf(confirmationMailBody, user.Username, code),
	})
	if !sent {
		service.logger.WarnContext(context, "confirmation code mail delivery failed",
			slog.String("username", user.Username),
		)
	}

	return nil
}

// # Token Exchange Flow

// TokenInput holds the credentials for exchanging a code for an access token.
type TokenInput struct {
	Username         string
	ConfirmationCode string
}

// TokenResult carries an issued access token.
type TokenResult struct {
	Token string `json:"token"`
}

/*
ExchangeToken trades a valid confirmation code for a signed access token.

Description: Looks up the user by username and compares the presented code
against the stored one. A mismatch leaves the stored code intact, so the user
may retry with the correct code. On success the stored code is cleared: each
issued code can be exchanged at most once.

Parameters:
  - context: context.Context
  - input: TokenInput

Returns:
  - *TokenResult: Signed access token
  - error: NotFound (unknown username), InvalidConfirmationCode, or internal errors
*/
func (service *Service) ExchangeToken(context context.Context, input TokenInput) (*TokenResult, error) {
	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("User not found with this username")
		}
		return nil, fmt.Errorf("auth_token_exchange_lookup_failed: %w", err)
	}

	if user.ConfirmationCode == "" || user.ConfirmationCode != input.ConfirmationCode {
		return nil, apperr.InvalidConfirmationCode("Invalid confirmation code. Use the code from your signup email, or sign up again to receive a new one")
	}

	token, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Username, string(user.Role), user.IsStaff, AccessTokenTTL,
	)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_token_sign_failed: %w", err))
	}

	if err := service.userRepository.ClearConfirmationCode(context, user.ID); err != nil {
		return nil, err
	}

	return &TokenResult{Token: token}, nil
}
