// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Credential Policy

const (
	// ConfirmationCodeLength is the exact length of an issued code.
	ConfirmationCodeLength = 10

	// ConfirmationCodeAlphabet is the set of characters a code is drawn
	// from. Uppercase-only keeps codes unambiguous when read from an email.
	ConfirmationCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// AccessTokenTTL is the lifetime of an issued access token.
	AccessTokenTTL = 24 * time.Hour
)

// # Input Limits

const (
	MaxUsernameLength  = 150
	MaxEmailLength     = 254
	MaxFirstNameLength = 150
	MaxLastNameLength  = 150
)

// # Mail Templates

const (
	confirmationMailSubject = "Your Critica confirmation code"
	confirmationMailBody    = "Hello %s,\n\nYour confirmation code is: %s\n\nExchange it at POST /api/v1/auth/token/ to receive an access token.\nIf you did not request this, you can safely ignore this message.\n"
)
