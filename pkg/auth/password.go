package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost keeps hashes compatible with existing accounts (10 rounds).
const PasswordCost = 10

// MaxPasswordBytes is the longest input bcrypt reads. Bytes past it do not
// affect the hash.
const MaxPasswordBytes = 72

// HashPassword salts and hashes plain with bcrypt. Every call draws a new
// salt, so the same password never hashes to the same value twice. Passwords
// longer than MaxPasswordBytes are accepted and hashed on their first
// MaxPasswordBytes bytes.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncate(plain), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("cannot hash password: %w", err)
	}
	return string(hashed), nil
}

func truncate(plain string) []byte {
	b := []byte(plain)
	if len(b) > MaxPasswordBytes {
		b = b[:MaxPasswordBytes]
	}
	return b
}
