// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Can edit and delete any review or comment
	RoleModerator UserRole = "moderator"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// Valid reports whether the role is one of the known enumeration values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

// # Derived Capabilities

// Capabilities is the set of derived permissions computed once per request
// from the stored role and the orthogonal staff elevation flag.
//
// It is passed explicitly through the call chain; nothing re-derives
// capabilities from ambient state.
type Capabilities struct {
	// CanModerate grants write access to any review or comment.
	CanModerate bool

	// CanAdminister grants full catalog and account management access.
	CanAdminister bool
}

// CapabilitiesOf computes the capability set for a (role, staff) pair.
//
// # Policy
//
// Staff elevation always implies admin capability, even without the admin
// role. Admin capability implies moderation capability.
func CapabilitiesOf(role UserRole, staff bool) Capabilities {
	isAdmin := role == RoleAdmin || staff

	return Capabilities{
		CanModerate:   isAdmin || role == RoleModerator,
		CanAdminister: isAdmin,
	}
}
