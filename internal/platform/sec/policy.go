// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "net/http"

// # Permission Evaluator
//
// Pure decision functions consulted before any mutation. They operate only
// on explicit inputs (method, capabilities, ownership) and have no access
// to storage or request state. Anonymous requesters never reach these
// functions for WRITE methods; the authenticated-or-read-only middleware
// composition rejects them first.

// IsSafeMethod reports whether the HTTP method is read-only
// (GET/HEAD/OPTIONS) and therefore never requires write permission.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// CanWriteCatalog decides collection-level write access to categories,
// genres, and titles. These resources have no author concept; only admin
// capability may mutate them.
func CanWriteCatalog(caps Capabilities) bool {
	return caps.CanAdminister
}

// CanActOnAuthored decides object-level access to an authored resource
// (review or comment).
//
// # Precedence
//
// Grant if the method is safe, else grant if the requester is the author,
// else grant if the requester can moderate or administer, else deny.
func CanActOnAuthored(method string, requesterID, authorID string, caps Capabilities) bool {
	if IsSafeMethod(method) {
		return true
	}
	if requesterID != "" && requesterID == authorID {
		return true
	}
	return caps.CanModerate || caps.CanAdminister
}

// CanManageAccounts decides access to the /users admin collection.
// Both safe and write methods require admin capability.
func CanManageAccounts(caps Capabilities) bool {
	return caps.CanAdminister
}
