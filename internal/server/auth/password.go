// Package auth implements password hashing and verification with bcrypt.
// All functions are pure: no storage access, no side effects.
package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Hash derives a salted bcrypt hash from plaintext. The salt is random, so
// repeated calls return different strings that all verify against plaintext.
func Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(h), nil
}

// Verify reports whether plaintext matches the given bcrypt hash.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// IsHashed reports whether value is structurally a bcrypt hash. It only
// inspects the modular-crypt prefix; it says nothing about which password
// the hash encodes. The bootstrap uses it to tell legacy plaintext rows
// apart from already-hashed ones.
func IsHashed(value string) bool {
	return strings.HasPrefix(value, "$2a$") ||
		strings.HasPrefix(value, "$2b$") ||
		strings.HasPrefix(value, "$2y$")
}
