// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

/*
GenerateConfirmationCode produces a fresh one-time confirmation code.

Each character is drawn independently from ConfirmationCodeAlphabet using a
cryptographically secure source, giving 36^10 possible codes.

Returns:
  - string: the generated code.
  - error: if the system entropy source fails.
*/
func GenerateConfirmationCode() (string, error) {
	alphabetSize := big.NewInt(int64(len(ConfirmationCodeAlphabet)))

	code := make([]byte, ConfirmationCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("generate confirmation code: %w", err)
		}
		code[i] = ConfirmationCodeAlphabet[n.Int64()]
	}

	return string(code), nil
}
