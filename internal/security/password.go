// Package security hashes and verifies passwords.
package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the salt rounds most bcrypt examples use.
const DefaultCost = 10

// HashPassword returns a bcrypt hash of password. A cost of 0 uses DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
