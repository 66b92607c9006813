// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConfirmationCode_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{10}$`)

	for i := 0; i < 100; i++ {
		code, err := GenerateConfirmationCode()
		require.NoError(t, err)
		assert.Len(t, code, ConfirmationCodeLength)
		assert.True(t, pattern.MatchString(code), "code %q does not match expected format", code)
	}
}

func TestGenerateConfirmationCode_Alphabet(t *testing.T) {
	code, err := GenerateConfirmationCode()
	require.NoError(t, err)

	for _, c := range code {
		assert.True(t, strings.ContainsRune(ConfirmationCodeAlphabet, c),
			"character %q not in allowed alphabet", c)
	}
}

func TestGenerateConfirmationCode_Unique(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		code, err := GenerateConfirmationCode()
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate code generated: %s", code)
		seen[code] = true
	}
}
