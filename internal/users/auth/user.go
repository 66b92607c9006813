// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity lifecycle and the passwordless
authentication flow.

It defines the core domain entity (User) and the logic for signup,
confirmation-code issuance, and access-token exchange. No password is ever
collected: the emailed one-time confirmation code is the only credential.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/taibuivan/critica/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Critica platform.
type User struct {
	ID        string       `json:"id"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name,omitempty"`
	LastName  string       `json:"last_name,omitempty"`
	Bio       string       `json:"bio,omitempty"`
	Role      sec.UserRole `json:"role"`

	// IsStaff is an orthogonal elevation flag. A staff user holds admin
	// capability regardless of Role.
	IsStaff bool `json:"-"`

	// ConfirmationCode is the latest issued one-time code, or blank when
	// unset. Explicitly omitted from JSON: it must never be echoed.
	ConfirmationCode string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Capabilities computes the derived permission set for this user.
func (u *User) Capabilities() sec.Capabilities {
	return sec.CapabilitiesOf(u.Role, u.IsStaff)
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
	FieldToken            = "token"
	FieldRole             = "role"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldBio              = "bio"
)
