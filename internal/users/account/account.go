// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account implements user administration and self-service profile
management.

It covers two audiences over the same underlying identity data:

  - Administrators: full CRUD over the user directory, including role
    assignment.
  - Members: read and update their own profile via the "me" endpoints. A
    member can never change their own role through this package.

The [auth.User] entity is shared with the authentication package; this package
owns its administrative lifecycle after signup.
*/
package account

import (
	"context"

	"github.com/taibuivan/critica/internal/users/auth"
	"github.com/taibuivan/critica/pkg/pagination"
)

// # Repository Contract

// AccountRepository abstracts persistence for user directory management.
type AccountRepository interface {
	// List returns a page of users ordered by username, optionally filtered
	// by a case-insensitive username substring search, plus the total count.
	List(ctx context.Context, search string, page pagination.Params) ([]auth.User, int, error)

	// FindByID loads a user by primary key.
	FindByID(ctx context.Context, id string) (*auth.User, error)

	// FindByUsername loads a user by exact username.
	FindByUsername(ctx context.Context, username string) (*auth.User, error)

	// FindByEmail loads a user by exact email address.
	FindByEmail(ctx context.Context, email string) (*auth.User, error)

	// Create persists an administrator-provisioned user.
	Create(ctx context.Context, user *auth.User) error

	// Update persists changes to a user's profile and role fields.
	Update(ctx context.Context, user *auth.User) error

	// Delete permanently removes a user. Authored reviews and comments are
	// removed by the storage layer's cascade rules.
	Delete(ctx context.Context, id string) error
}

// # Field Identifiers

const (
	fieldSearch = "search"
)
