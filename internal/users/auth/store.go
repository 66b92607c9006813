// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # Repository Contract

/*
UserRepository abstracts persistence for user identities.

Lookup methods return apperr.NotFound-wrapped errors when no row matches, so
callers can branch on the application error code rather than driver sentinels.
*/
type UserRepository interface {
	// Create persists a new user. A unique violation on username or email
	// surfaces as a conflict error.
	Create(ctx context.Context, user *User) error

	// FindByUsername loads a user by exact username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByEmail loads a user by exact email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// SetConfirmationCode replaces the stored confirmation code for a user,
	// invalidating any previously issued code.
	SetConfirmationCode(ctx context.Context, userID, code string) error

	// ClearConfirmationCode blanks the stored code after a successful
	// token exchange.
	ClearConfirmationCode(ctx context.Context, userID string) error
}
