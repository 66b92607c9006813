// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/critica/internal/platform/sec"
)

/*
TestCapabilitiesOf verifies the capability computation for every (role, staff) pair.
*/
func TestCapabilitiesOf(t *testing.T) {
	tests := []struct {
		name          string
		role          sec.UserRole
		staff         bool
		canModerate   bool
		canAdminister bool
	}{
		{"plain_user", sec.RoleUser, false, false, false},
		{"moderator", sec.RoleModerator, false, true, false},
		{"admin", sec.RoleAdmin, false, true, true},
		{"staff_user", sec.RoleUser, true, true, true},
		{"staff_moderator", sec.RoleModerator, true, true, true},
		{"staff_admin", sec.RoleAdmin, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := sec.CapabilitiesOf(tt.role, tt.staff)
			assert.Equal(t, tt.canModerate, caps.CanModerate, "CanModerate")
			assert.Equal(t, tt.canAdminister, caps.CanAdminister, "CanAdminister")
		})
	}
}

/*
TestIsSafeMethod verifies the SAFE method classification.
*/
func TestIsSafeMethod(t *testing.T) {
	assert.True(t, sec.IsSafeMethod(http.MethodGet))
	assert.True(t, sec.IsSafeMethod(http.MethodHead))
	assert.True(t, sec.IsSafeMethod(http.MethodOptions))
	assert.False(t, sec.IsSafeMethod(http.MethodPost))
	assert.False(t, sec.IsSafeMethod(http.MethodPatch))
	assert.False(t, sec.IsSafeMethod(http.MethodDelete))
	assert.False(t, sec.IsSafeMethod(http.MethodPut))
}

/*
TestCanActOnAuthored exercises the full object-level decision table for
reviews and comments: (role, method, ownership) → expected grant.
*/
func TestCanActOnAuthored(t *testing.T) {
	const owner = "user-1"
	const other = "user-2"

	tests := []struct {
		name      string
		method    string
		requester string
		role      sec.UserRole
		staff     bool
		allowed   bool
	}{
		// SAFE methods are always granted, ownership and role are irrelevant.
		{"get_non_owner_user", http.MethodGet, other, sec.RoleUser, false, true},
		{"head_non_owner_user", http.MethodHead, other, sec.RoleUser, false, true},

		// Owners may mutate their own resource regardless of role.
		{"patch_owner_user", http.MethodPatch, owner, sec.RoleUser, false, true},
		{"delete_owner_user", http.MethodDelete, owner, sec.RoleUser, false, true},

		// Non-owners need moderation capability.
		{"patch_non_owner_user", http.MethodPatch, other, sec.RoleUser, false, false},
		{"delete_non_owner_user", http.MethodDelete, other, sec.RoleUser, false, false},
		{"patch_non_owner_moderator", http.MethodPatch, other, sec.RoleModerator, false, true},
		{"delete_non_owner_moderator", http.MethodDelete, other, sec.RoleModerator, false, true},
		{"patch_non_owner_admin", http.MethodPatch, other, sec.RoleAdmin, false, true},
		{"delete_non_owner_admin", http.MethodDelete, other, sec.RoleAdmin, false, true},

		// Staff elevation grants admin capability without the admin role.
		{"patch_non_owner_staff_user", http.MethodPatch, other, sec.RoleUser, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := sec.CapabilitiesOf(tt.role, tt.staff)
			got := sec.CanActOnAuthored(tt.method, tt.requester, owner, caps)
			assert.Equal(t, tt.allowed, got)
		})
	}
}

/*
TestCanWriteCatalog verifies that catalog mutation is admin-capability only.
*/
func TestCanWriteCatalog(t *testing.T) {
	assert.False(t, sec.CanWriteCatalog(sec.CapabilitiesOf(sec.RoleUser, false)))
	assert.False(t, sec.CanWriteCatalog(sec.CapabilitiesOf(sec.RoleModerator, false)))
	assert.True(t, sec.CanWriteCatalog(sec.CapabilitiesOf(sec.RoleAdmin, false)))
	assert.True(t, sec.CanWriteCatalog(sec.CapabilitiesOf(sec.RoleUser, true)))
}

/*
TestCanManageAccounts verifies the /users collection policy.
*/
func TestCanManageAccounts(t *testing.T) {
	assert.False(t, sec.CanManageAccounts(sec.CapabilitiesOf(sec.RoleModerator, false)))
	assert.True(t, sec.CanManageAccounts(sec.CapabilitiesOf(sec.RoleAdmin, false)))
	assert.True(t, sec.CanManageAccounts(sec.CapabilitiesOf(sec.RoleModerator, true)))
}
